// Package mocks provides shared test doubles for the store, the password
// hasher and the user service.
//
// Function-field mocks (MockUserStore, MockPasswordHasher, MockUserService)
// override individual methods; MockUserStore forwards everything else to a
// real store so a test only injects the failure it cares about:
//
//	users := mocks.NewMockUserStore(memory.NewUserStore(nil))
//	users.SaveFn = func(ctx context.Context, u *domain.User) error {
//	    return errors.New("connection reset")
//	}
//
// TestifyMockUserStore is available when call expectations matter.
package mocks
