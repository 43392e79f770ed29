//go:generate go run go.uber.org/mock/mockgen -source=membership.go -destination=../mocks/mock_membership_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"team-lab/domain"
	"team-lab/errors"
)

type IMembershipRepository interface {
	NextTeamID() (domain.TeamID, error)
	SaveTeam(team domain.Team) error
	GetTeam(teamID domain.TeamID) (domain.Team, error)
	SaveMember(member domain.TeamMember) error
	GetMember(teamID domain.TeamID, userID domain.UserID) (domain.TeamMember, error)
	ListMembers(teamID domain.TeamID) ([]domain.TeamMember, error)
}

type MembershipRepository struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger
}

func NewMembershipRepository(db *badger.DB, log *slog.Logger) (*MembershipRepository, error) {
	seq, err := db.GetSequence([]byte("seq:team"), 32)
	if err != nil {
		return nil, err
	}
	return &MembershipRepository{db: db, seq: seq, log: log}, nil
}

// Close releases the leased team id range back to the store.
func (r *MembershipRepository) Close() error {
	return r.seq.Release()
}

// NextTeamID allocates a monotonically increasing team identifier.
// Badger sequences lease ids in batches, so ids may have gaps after a
// restart but are never reused.
func (r *MembershipRepository) NextTeamID() (domain.TeamID, error) {
	n, err := r.seq.Next()
	if err != nil {
		return 0, err
	}
	// Sequence starts at 0; team ids start at 1.
	return domain.TeamID(n + 1), nil
}

func (r *MembershipRepository) SaveTeam(team domain.Team) error {
	bytes, err := json.Marshal(team)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(teamKey(team.ID), bytes)
	})
}

func (r *MembershipRepository) GetTeam(teamID domain.TeamID) (domain.Team, error) {
	var team domain.Team
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(teamKey(teamID))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &team)
		})
	})
	return team, err
}

func (r *MembershipRepository) SaveMember(member domain.TeamMember) error {
	bytes, err := json.Marshal(member)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(memberKey(member.TeamID, member.UserID), bytes)
	})
}

func (r *MembershipRepository) GetMember(teamID domain.TeamID, userID domain.UserID) (domain.TeamMember, error) {
	var member domain.TeamMember
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(memberKey(teamID, userID))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &member)
		})
	})
	return member, err
}

func (r *MembershipRepository) ListMembers(teamID domain.TeamID) ([]domain.TeamMember, error) {
	var members []domain.TeamMember
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := memberPrefix(teamID)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var member domain.TeamMember
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &member)
			})
			if err != nil {
				return err
			}
			members = append(members, member)
		}
		return nil
	})
	return members, err
}
