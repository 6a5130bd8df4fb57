package services

import (
	"github.com/sirupsen/logrus"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/aggregates/objective"
	"github.com/dsalvat/fase-platform-sub001/pkg/eventbus"
)

const confirmPoints = 10

// RegisterGamificationSubscriber wires the point-awarding listeners onto the
// bus. Awards ride on the best-effort event stream, so a lost award never
// fails the operation that earned it.
func RegisterGamificationSubscriber(bus eventbus.EventBus, log *logrus.Logger) {
	bus.Subscribe(func(e objective.ConfirmedEvent) {
		log.WithFields(logrus.Fields{
			"objective_id": e.ObjectiveID,
			"owner_id":     e.OwnerID,
			"month":        e.Month.String(),
			"points":       confirmPoints,
		}).Info("gamification: plan confirmed, points awarded")
	})
	bus.Subscribe(func(e objective.UnconfirmedEvent) {
		log.WithFields(logrus.Fields{
			"objective_id": e.ObjectiveID,
			"owner_id":     e.OwnerID,
			"actor_id":     e.ActorID,
			"points":       -confirmPoints,
		}).Info("gamification: plan unconfirmed, points revoked")
	})
	bus.Subscribe(func(e objective.CreatedEvent) {
		log.WithFields(logrus.Fields{
			"objective_id": e.ObjectiveID,
			"owner_id":     e.OwnerID,
			"month":        e.Month.String(),
		}).Info("audit: objective created")
	})
	bus.Subscribe(func(e objective.DeletedEvent) {
		log.WithFields(logrus.Fields{
			"objective_id": e.ObjectiveID,
			"owner_id":     e.OwnerID,
		}).Info("audit: objective deleted")
	})
}
