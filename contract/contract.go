//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"team-lab/domain"
	"team-lab/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself; supervision handles panics and restarts.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging and supervision, avoiding manual naming in the
// Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// MembershipVerifier is the gateway's team-access collaborator: a joinTeam
// request is only honored when the connection's user belongs to the team.
type MembershipVerifier interface {
	VerifyMembership(teamID domain.TeamID, userID domain.UserID) error
}

// Dispatcher delivers side notifications (chat bots, webhooks) after a
// successful domain mutation. Implementations own their own retry policy;
// the outbox swallows and logs their errors.
type Dispatcher interface {
	Dispatch(ctx context.Context, n event.Notification) error
}
