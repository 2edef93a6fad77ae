package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/platform/logger"
	"github.com/phrazzld/keyring-api/internal/store"
)

// UserStore keeps user documents in maps guarded by a RWMutex. Documents are
// cloned on the way in and out.
type UserStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*domain.User
	byEmail map[string]uuid.UUID
	// seq records insertion order so equal sort keys keep a stable order.
	seq    map[uuid.UUID]uint64
	next   uint64
	logger *slog.Logger
}

// NewUserStore creates an empty UserStore.
func NewUserStore(log *slog.Logger) *UserStore {
	if log == nil {
		log = slog.Default()
	}
	return &UserStore{
		users:   make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]uuid.UUID),
		seq:     make(map[uuid.UUID]uint64),
		logger:  log.With(slog.String("component", "memory_user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		log.Debug("email already exists", slog.String("user_id", user.ID.String()))
		return store.ErrEmailExists
	}

	s.users[user.ID] = user.Clone()
	s.byEmail[user.Email] = user.ID
	s.next++
	s.seq[user.ID] = s.next
	return nil
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u.Clone(), nil
}

// GetByEmail implements store.UserStore.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return s.users[id].Clone(), nil
}

// IsEmailTaken implements store.UserStore.
func (s *UserStore) IsEmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	return ok && id != excludeID, nil
}

// List implements store.UserStore.
func (s *UserStore) List(
	ctx context.Context,
	filter store.UserFilter,
	opts store.QueryOptions,
) (*store.UserPage, error) {
	s.mu.RLock()
	matched := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		if filter.Matches(u) {
			matched = append(matched, u)
		}
	}
	seq := make(map[uuid.UUID]uint64, len(matched))
	for _, u := range matched {
		seq[u.ID] = s.seq[u.ID]
	}
	s.mu.RUnlock()

	keys := opts.SortKeys()
	sort.SliceStable(matched, func(i, j int) bool {
		for _, k := range keys {
			c := compareField(matched[i], matched[j], k.Field)
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return seq[matched[i].ID] < seq[matched[j].ID]
	})

	total := len(matched)
	start := opts.Skip()
	if start > total {
		start = total
	}
	end := total
	if opts.Limit >= 0 && opts.Limit < total-start {
		end = start + opts.Limit
	}

	results := make([]*domain.User, 0, end-start)
	for _, u := range matched[start:end] {
		results = append(results, u.Clone())
	}
	return store.NewUserPage(results, total, opts), nil
}

// Save implements store.UserStore.
func (s *UserStore) Save(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	if owner, taken := s.byEmail[user.Email]; taken && owner != user.ID {
		log.Debug("email already exists", slog.String("user_id", user.ID.String()))
		return store.ErrEmailExists
	}

	if current.Email != user.Email {
		delete(s.byEmail, current.Email)
		s.byEmail[user.Email] = user.ID
	}
	s.users[user.ID] = user.Clone()
	return nil
}

// Delete implements store.UserStore.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	delete(s.byEmail, u.Email)
	delete(s.users, id)
	delete(s.seq, id)
	return nil
}

func compareField(a, b *domain.User, field string) int {
	switch field {
	case store.SortFieldName:
		return strings.Compare(a.Name, b.Name)
	case store.SortFieldEmail:
		return strings.Compare(a.Email, b.Email)
	case store.SortFieldRole:
		return strings.Compare(string(a.Role), string(b.Role))
	case store.SortFieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case store.SortFieldUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return 0
	}
}
