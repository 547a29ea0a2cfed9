package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/pkg/hash"
)

// In-memory stores holding real rows, so the registration walk-through can
// assert on storage state between steps, not just on call sequences.

type memCodeStore struct {
	rows map[uuid.UUID]domain.VerificationCode
}

func newMemCodeStore() *memCodeStore {
	return &memCodeStore{rows: make(map[uuid.UUID]domain.VerificationCode)}
}

func (s *memCodeStore) Create(ctx context.Context, code *domain.VerificationCode) error {
	s.rows[code.ID] = *code
	return nil
}

func (s *memCodeStore) DeleteByEmail(ctx context.Context, purpose domain.VerificationPurpose, email string) error {
	for id, row := range s.rows {
		if row.Purpose == purpose && row.Email == email {
			delete(s.rows, id)
		}
	}
	return nil
}

func (s *memCodeStore) DeleteByFuneralHome(ctx context.Context, purpose domain.VerificationPurpose, funeralHomeID uuid.UUID) error {
	for id, row := range s.rows {
		if row.Purpose == purpose && row.FuneralHomeID == funeralHomeID {
			delete(s.rows, id)
		}
	}
	return nil
}

func (s *memCodeStore) GetByEmailAndCode(ctx context.Context, purpose domain.VerificationPurpose, email string, code string) (*domain.VerificationCode, error) {
	for _, row := range s.rows {
		if row.Purpose == purpose && row.Email == email && row.Code == code {
			found := row
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memCodeStore) GetByFuneralHomeAndCode(ctx context.Context, purpose domain.VerificationPurpose, funeralHomeID uuid.UUID, email string, code string) (*domain.VerificationCode, error) {
	for _, row := range s.rows {
		if row.Purpose == purpose && row.FuneralHomeID == funeralHomeID && row.Email == email && row.Code == code {
			found := row
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memCodeStore) Consume(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return domain.ErrNoRowsAffected
	}
	delete(s.rows, id)
	return nil
}

func (s *memCodeStore) count(purpose domain.VerificationPurpose, email string) int {
	n := 0
	for _, row := range s.rows {
		if row.Purpose == purpose && row.Email == email {
			n++
		}
	}
	return n
}

type memHomeStore struct {
	rows map[uuid.UUID]domain.FuneralHome
}

func newMemHomeStore() *memHomeStore {
	return &memHomeStore{rows: make(map[uuid.UUID]domain.FuneralHome)}
}

func (s *memHomeStore) Create(ctx context.Context, home *domain.FuneralHome) error {
	for _, row := range s.rows {
		if row.Name == home.Name || row.Email == home.Email {
			return domain.ErrDuplicateEntry
		}
	}
	s.rows[home.ID] = *home
	return nil
}

func (s *memHomeStore) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.FuneralHome, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (s *memHomeStore) GetByEmail(ctx context.Context, email string) (*domain.FuneralHome, error) {
	for _, row := range s.rows {
		if row.Email == email {
			found := row
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memHomeStore) GetByName(ctx context.Context, name string) (*domain.FuneralHome, error) {
	for _, row := range s.rows {
		if row.Name == name {
			found := row
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memHomeStore) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	row, ok := s.rows[id]
	if !ok {
		return domain.ErrNoRowsAffected
	}
	row.Email = email
	s.rows[id] = row
	return nil
}

func (s *memHomeStore) UpdatePasswordByEmail(ctx context.Context, email string, passwordHash string) error {
	for id, row := range s.rows {
		if row.Email == email {
			row.PasswordHash = passwordHash
			s.rows[id] = row
			return nil
		}
	}
	return domain.ErrNoRowsAffected
}

func (s *memHomeStore) UpdateStripeAccountID(ctx context.Context, id uuid.UUID, accountID string) error {
	row, ok := s.rows[id]
	if !ok {
		return domain.ErrNoRowsAffected
	}
	row.StripeAccountID.String = accountID
	row.StripeAccountID.Valid = true
	s.rows[id] = row
	return nil
}

func (s *memHomeStore) SetOnboardingComplete(ctx context.Context, id uuid.UUID) error {
	row, ok := s.rows[id]
	if !ok {
		return domain.ErrNoRowsAffected
	}
	row.StripeOnboardingComplete = true
	s.rows[id] = row
	return nil
}

// seqGenerator hands out a different code per issue so superseding is
// observable.
type seqGenerator struct {
	n int
}

func (g *seqGenerator) RandomCode(length int) string {
	g.n++
	return fmt.Sprintf("%0*d", length, g.n*111111)
}

type recordingDispatcher struct {
	codes   []string
	notices []string
}

func (d *recordingDispatcher) DispatchVerificationCode(ctx context.Context, email string, code string, purpose domain.VerificationPurpose) error {
	d.codes = append(d.codes, code)
	return nil
}

func (d *recordingDispatcher) DispatchChangeNotice(ctx context.Context, email string, notice string) error {
	d.notices = append(d.notices, notice)
	return nil
}

func TestRegistrationWalkthrough(t *testing.T) {
	ctx := context.Background()
	codes := newMemCodeStore()
	homes := newMemHomeStore()
	dispatcher := &recordingDispatcher{}
	s := newVerificationService(
		codes,
		homes,
		hash.NewBcryptHasher(testAuthConfig.BcryptCost),
		&seqGenerator{},
		dispatcher,
		testAuthConfig,
	)

	// First issue: one live code, dispatched.
	require.NoError(t, s.IssueRegisterCode(ctx, testEmail, testHomeName))
	require.Equal(t, 1, codes.count(domain.PurposeRegister, testEmail))
	require.Len(t, dispatcher.codes, 1)
	firstCode := dispatcher.codes[0]

	// Re-issue supersedes: still exactly one live code, and a new one.
	require.NoError(t, s.IssueRegisterCode(ctx, testEmail, testHomeName))
	require.Equal(t, 1, codes.count(domain.PurposeRegister, testEmail))
	require.Len(t, dispatcher.codes, 2)
	secondCode := dispatcher.codes[1]
	require.NotEqual(t, firstCode, secondCode)

	// The superseded code no longer redeems.
	_, err := s.RedeemRegisterCode(ctx, testEmail, firstCode, "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidCode)

	// The live code redeems into an account.
	home, err := s.RedeemRegisterCode(ctx, testEmail, secondCode, "secret-pass")
	require.NoError(t, err)

	stored, err := homes.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, home.ID, stored.ID)
	assert.Equal(t, testHomeName, stored.Name)

	// The redeemed code row is gone, so redemption is single-use.
	assert.Equal(t, 0, codes.count(domain.PurposeRegister, testEmail))
	_, err = s.RedeemRegisterCode(ctx, testEmail, secondCode, "secret-pass")
	assert.ErrorIs(t, err, ErrInvalidCode)

	// With the account in place, the same name and email are now taken.
	assert.ErrorIs(t, s.IssueRegisterCode(ctx, testEmail, testHomeName), ErrHomeNameTaken)
	assert.ErrorIs(t, s.IssueRegisterCode(ctx, testEmail, "別の葬儀社"), ErrEmailTaken)
	assert.Equal(t, 0, codes.count(domain.PurposeRegister, testEmail))
}
