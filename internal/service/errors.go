package service

// Error contract of UserService.
//
// Expected conditions are reported with sentinels that callers match with
// errors.Is:
//
//   - store.ErrUserNotFound: an id-targeted operation named a missing user
//   - store.ErrEmailExists: the email belongs to another user
//   - domain.ErrCredentialNotFound: the user holds no such credential
//   - domain.ErrEmptyPatch and domain validation errors: the input was rejected
//
// Reads that find nothing return a nil result and a nil error instead.
// Failures of the store or the password hasher are returned exactly as the
// collaborator produced them; the service does not retry.
