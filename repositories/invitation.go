//go:generate go run go.uber.org/mock/mockgen -source=invitation.go -destination=../mocks/mock_invitation_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"team-lab/domain"
	"team-lab/errors"
)

type IInvitationRepository interface {
	SaveInvite(invite domain.TeamInvitation) error
	GetActiveInvite(teamID domain.TeamID, token string) (domain.TeamInvitation, error)
	ListActiveInvites(teamID domain.TeamID) ([]domain.TeamInvitation, error)
	DeactivateInvites(teamID domain.TeamID) (int, error)
	RedeemInvite(teamID domain.TeamID, token string, userID domain.UserID, now time.Time) (domain.TeamInvitation, error)
}

// InvitationRepository owns invite records and the locked redemption path.
//
// Redemption needs row-level pessimistic locking: two concurrent redeems of
// one token must serialize so the usage cap is re-checked after the winner
// commits. Badger has no SELECT FOR UPDATE, so a per-invite mutex plays the
// row lock and a single Update transaction provides atomicity of the
// membership insert plus the usage increment. Contention on one token never
// blocks redemption of another.
type InvitationRepository struct {
	db    *badger.DB
	log   *slog.Logger
	locks inviteLocks
}

func NewInvitationRepository(db *badger.DB, log *slog.Logger) *InvitationRepository {
	return &InvitationRepository{
		db:    db,
		log:   log,
		locks: inviteLocks{entries: make(map[string]*inviteLock)},
	}
}

// inviteLocks hands out one mutex per invite key. Entries are refcounted and
// dropped once the last holder releases, so the table only ever holds keys
// with redemptions in flight.
type inviteLocks struct {
	mu      sync.Mutex
	entries map[string]*inviteLock
}

type inviteLock struct {
	mu   sync.Mutex
	refs int
}

func (l *inviteLocks) acquire(key string) func() {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &inviteLock{}
		l.entries[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}

func (l *inviteLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (r *InvitationRepository) lockInvite(key []byte) func() {
	return r.locks.acquire(string(key))
}

func (r *InvitationRepository) SaveInvite(invite domain.TeamInvitation) error {
	bytes, err := json.Marshal(invite)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(inviteKey(invite.TeamID, invite.Token), bytes)
	})
}

// GetActiveInvite loads the ACTIVE invite stored for (teamID, token).
// Inactive or absent records both surface as ErrNotFound: a revoked link is
// indistinguishable from one that never existed.
func (r *InvitationRepository) GetActiveInvite(teamID domain.TeamID, token string) (domain.TeamInvitation, error) {
	var invite domain.TeamInvitation
	err := r.db.View(func(txn *badger.Txn) error {
		loaded, err := readInvite(txn, inviteKey(teamID, token))
		if err != nil {
			return err
		}
		invite = loaded
		return nil
	})
	return invite, err
}

func (r *InvitationRepository) ListActiveInvites(teamID domain.TeamID) ([]domain.TeamInvitation, error) {
	var invites []domain.TeamInvitation
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := invitePrefix(teamID)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var invite domain.TeamInvitation
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &invite)
			})
			if err != nil {
				return err
			}
			if invite.ActStatus == domain.ActStatusActive {
				invites = append(invites, invite)
			}
		}
		return nil
	})
	return invites, err
}

// DeactivateInvites flips every ACTIVE invite of a team to INACTIVE and
// returns how many were revoked. INACTIVE is terminal.
func (r *InvitationRepository) DeactivateInvites(teamID domain.TeamID) (int, error) {
	revoked := 0
	err := r.db.Update(func(txn *badger.Txn) error {
		prefix := invitePrefix(teamID)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var invite domain.TeamInvitation
			key := it.Item().KeyCopy(nil)
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &invite)
			})
			if err != nil {
				return err
			}
			if invite.ActStatus != domain.ActStatusActive {
				continue
			}
			invite.ActStatus = domain.ActStatusInactive
			bytes, err := json.Marshal(invite)
			if err != nil {
				return err
			}
			if err := txn.Set(key, bytes); err != nil {
				return err
			}
			revoked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return revoked, nil
}

// RedeemInvite performs the whole redemption as one serialized transaction:
//
//  1. take the per-invite lock,
//  2. re-check status, expiry and usage under that lock,
//  3. insert the MEMBER membership row,
//  4. increment the usage counter.
//
// Any failed check aborts the transaction wholesale: no partial membership
// row, no partial increment. For a cap of N, at most N concurrent calls
// succeed; the rest legitimately resolve to ErrInviteExhausted.
func (r *InvitationRepository) RedeemInvite(teamID domain.TeamID, token string, userID domain.UserID, now time.Time) (domain.TeamInvitation, error) {
	key := inviteKey(teamID, token)
	unlock := r.lockInvite(key)
	defer unlock()

	var invite domain.TeamInvitation
	err := r.db.Update(func(txn *badger.Txn) error {
		loaded, err := readInvite(txn, key)
		if err != nil {
			return err
		}
		if now.After(loaded.EndAt) {
			return errors.ErrInviteExpired
		}
		if loaded.Exhausted() {
			return errors.ErrInviteExhausted
		}

		mKey := memberKey(teamID, userID)
		if _, err := txn.Get(mKey); err == nil {
			return errors.ErrAlreadyMember
		} else if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		member := domain.TeamMember{
			TeamID:   teamID,
			UserID:   userID,
			Role:     domain.RoleMember,
			JoinedAt: now,
		}
		memberBytes, err := json.Marshal(member)
		if err != nil {
			return err
		}
		if err := txn.Set(mKey, memberBytes); err != nil {
			return err
		}

		loaded.UsageCurCnt++
		inviteBytes, err := json.Marshal(loaded)
		if err != nil {
			return err
		}
		if err := txn.Set(key, inviteBytes); err != nil {
			return err
		}
		invite = loaded
		return nil
	})
	if err != nil {
		return domain.TeamInvitation{}, err
	}
	r.log.Debug("invite redeemed",
		"team_id", invite.TeamID,
		"user_id", userID,
		"usage_cur_cnt", invite.UsageCurCnt,
		"usage_max_cnt", invite.UsageMaxCnt,
	)
	return invite, nil
}

func readInvite(txn *badger.Txn, key []byte) (domain.TeamInvitation, error) {
	var invite domain.TeamInvitation
	item, err := txn.Get(key)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return invite, errors.ErrNotFound
	}
	if err != nil {
		return invite, err
	}
	err = item.Value(func(value []byte) error {
		return json.Unmarshal(value, &invite)
	})
	if err != nil {
		return invite, err
	}
	if invite.ActStatus != domain.ActStatusActive {
		return invite, errors.ErrNotFound
	}
	return invite, nil
}
