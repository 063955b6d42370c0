package audithandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"equip-repair-backend/db"
	auditstore "equip-repair-backend/lib/audit/store"
	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type Provider interface {
	// Record is best-effort: a failed audit write is logged and
	// swallowed, it never rolls back the primary operation.
	Record(refType models.BallotType, refID, actorID, action string, changes dbmodels.EntityChanges)
	ListByRef(refType models.BallotType, refID string) (list []dbmodels.BallotAudit, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: auditstore.NewInstance(db.DB),
	}
}

func NewInstanceWithTx(tx *gorm.DB) Provider {
	return impl{
		store: auditstore.NewInstance(tx),
	}
}

type impl struct {
	store auditstore.Provider
}

func (i impl) Record(refType models.BallotType, refID, actorID, action string, changes dbmodels.EntityChanges) {
	rec := dbmodels.BallotAudit{
		RefType: refType,
		RefID:   refID,
		ActorID: actorID,
		Action:  action,
		Changes: changes,
	}
	_, err := i.store.Create(rec)
	if err != nil {
		log.
			WithField("ref_type", refType).
			WithField("ref_id", refID).
			WithError(err).
			Error("failed to write ballot audit record")
	}
}

func (i impl) ListByRef(refType models.BallotType, refID string) ([]dbmodels.BallotAudit, error) {
	return i.store.ListByRef(refType, refID)
}
