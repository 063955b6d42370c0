package cascade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	arbstore "equip-repair-backend/lib/ballots/arb/store"
	asbstore "equip-repair-backend/lib/ballots/asb/store"
	dabstore "equip-repair-backend/lib/ballots/dab/store"
	msbstore "equip-repair-backend/lib/ballots/msb/store"
	qabstore "equip-repair-backend/lib/ballots/qab/store"
	srbstore "equip-repair-backend/lib/ballots/srb/store"
	tabstore "equip-repair-backend/lib/ballots/tab/store"
	equipmentstore "equip-repair-backend/lib/dicts/equipment/store"
	"equip-repair-backend/lib/ledger"
	repairrequeststore "equip-repair-backend/lib/repair-request/store"
	repairhistoryhandler "equip-repair-backend/lib/repairhistory"
	workitemhandler "equip-repair-backend/lib/workitem"
	"equip-repair-backend/models"
	dbmodels "equip-repair-backend/models/db"
)

type fakeTabStore struct {
	tabstore.Provider
	rec *dbmodels.TechnicalAppraisalBallot
}

func (f *fakeTabStore) FindByRequest(string) (*dbmodels.TechnicalAppraisalBallot, error) {
	return f.rec, nil
}

type fakeDabStore struct {
	dabstore.Provider
	rec *dbmodels.DetailAppraisalBallot
}

func (f *fakeDabStore) FindByRequest(string) (*dbmodels.DetailAppraisalBallot, error) {
	return f.rec, nil
}

type fakeMsbStore struct {
	msbstore.Provider
	ballots []dbmodels.MaterialSupplyBallot
}

func (f *fakeMsbStore) ListByRequest(string) ([]dbmodels.MaterialSupplyBallot, error) {
	return f.ballots, nil
}

type fakeAsbStore struct {
	asbstore.Provider
	rec  *dbmodels.AssignmentBallot
	open *dbmodels.AssignmentBallot
}

func (f *fakeAsbStore) FindByRequest(string) (*dbmodels.AssignmentBallot, error) {
	return f.rec, nil
}

func (f *fakeAsbStore) FindOpenByRequest(string) (*dbmodels.AssignmentBallot, error) {
	return f.open, nil
}

type fakeArbStore struct {
	arbstore.Provider
	rec     *dbmodels.AcceptanceBallot
	pending *dbmodels.AcceptanceBallot
	created []dbmodels.AcceptanceBallot
}

func (f *fakeArbStore) FindByRequest(string) (*dbmodels.AcceptanceBallot, error) {
	return f.rec, nil
}

func (f *fakeArbStore) FindPendingByEquipment(string) (*dbmodels.AcceptanceBallot, error) {
	return f.pending, nil
}

func (f *fakeArbStore) Create(rec dbmodels.AcceptanceBallot) (string, error) {
	f.created = append(f.created, rec)
	return "arb-1", nil
}

type fakeQabStore struct {
	qabstore.Provider
	rec *dbmodels.QualityAssessmentBallot
}

func (f *fakeQabStore) FindByRequest(string) (*dbmodels.QualityAssessmentBallot, error) {
	return f.rec, nil
}

type fakeSrbStore struct {
	srbstore.Provider
	rec     *dbmodels.SettlementRepairBallot
	updates []map[string]interface{}
}

func (f *fakeSrbStore) FindByRequest(string) (*dbmodels.SettlementRepairBallot, error) {
	return f.rec, nil
}

func (f *fakeSrbStore) Update(_ string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

type fakeEquipmentStore struct {
	equipmentstore.Provider
	statuses []models.EquipmentStatus
}

func (f *fakeEquipmentStore) UpdateStatus(_ string, status models.EquipmentStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

type fakeRequestStore struct {
	repairrequeststore.Provider
	updates []map[string]interface{}
}

func (f *fakeRequestStore) Update(_ string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

type fakeHistory struct {
	repairhistoryhandler.Provider
	recorded []models.BallotType
	closed   []string
}

func (f *fakeHistory) RecordBallot(_ string, _ *string, ballotType models.BallotType, _ string) error {
	f.recorded = append(f.recorded, ballotType)
	return nil
}

func (f *fakeHistory) Close(requestID string, _, _ *time.Time) error {
	f.closed = append(f.closed, requestID)
	return nil
}

type fakeWorkItems struct {
	workitemhandler.Provider
	created []workitemhandler.WorkItemData
	fanouts []models.PositionRole
	deleted []models.BallotType
}

func (f *fakeWorkItems) Create(data workitemhandler.WorkItemData) (string, error) {
	f.created = append(f.created, data)
	return "wi-1", nil
}

func (f *fakeWorkItems) FanOutToRole(role models.PositionRole, _ workitemhandler.WorkItemData) error {
	f.fanouts = append(f.fanouts, role)
	return nil
}

func (f *fakeWorkItems) DeleteForRef(refType models.BallotType, _ string, _ *models.TaskType) error {
	f.deleted = append(f.deleted, refType)
	return nil
}

type fakeLedger struct {
	ledger.Provider
	allSupplied bool
}

func (f *fakeLedger) AllSupplied(string) (bool, error) {
	return f.allSupplied, nil
}

type engineFixture struct {
	tab       *fakeTabStore
	dab       *fakeDabStore
	msb       *fakeMsbStore
	asb       *fakeAsbStore
	arb       *fakeArbStore
	qab       *fakeQabStore
	srb       *fakeSrbStore
	requests  *fakeRequestStore
	equipment *fakeEquipmentStore
	history   *fakeHistory
	work      *fakeWorkItems
	ledger    *fakeLedger
}

func newFixture() *engineFixture {
	return &engineFixture{
		tab:       &fakeTabStore{},
		dab:       &fakeDabStore{},
		msb:       &fakeMsbStore{},
		asb:       &fakeAsbStore{},
		arb:       &fakeArbStore{},
		qab:       &fakeQabStore{},
		srb:       &fakeSrbStore{},
		requests:  &fakeRequestStore{},
		equipment: &fakeEquipmentStore{},
		history:   &fakeHistory{},
		work:      &fakeWorkItems{},
		ledger:    &fakeLedger{},
	}
}

func (f *engineFixture) engine() impl {
	return impl{
		tabStore:       f.tab,
		dabStore:       f.dab,
		msbStore:       f.msb,
		asbStore:       f.asb,
		arbStore:       f.arb,
		qabStore:       f.qab,
		srbStore:       f.srb,
		requestStore:   f.requests,
		equipmentStore: f.equipment,
		history:        f.history,
		workItems:      f.work,
		ledger:         f.ledger,
	}
}

var signer = "user-1"

func signedTechnicalAppraisal(status models.AppraisalStatus) *dbmodels.TechnicalAppraisalBallot {
	return &dbmodels.TechnicalAppraisalBallot{
		BaseModel:           dbmodels.BaseModel{ID: "tab-1"},
		Status:              status,
		OperatorID:          &signer,
		EquipmentManagerID:  &signer,
		RepairmanID:         &signer,
		TransportMechanicID: &signer,
	}
}

func signedDetailAppraisal(status models.AppraisalStatus) *dbmodels.DetailAppraisalBallot {
	return &dbmodels.DetailAppraisalBallot{
		BaseModel:           dbmodels.BaseModel{ID: "dab-1"},
		Status:              status,
		OperatorID:          &signer,
		EquipmentManagerID:  &signer,
		RepairmanID:         &signer,
		TransportMechanicID: &signer,
	}
}

func signedSupply(id string, status models.SupplyStatus) dbmodels.MaterialSupplyBallot {
	return dbmodels.MaterialSupplyBallot{
		BaseModel:           dbmodels.BaseModel{ID: id},
		Status:              status,
		LeadWarehouseID:     &signer,
		ReceiverID:          &signer,
		DeputyForemanID:     &signer,
		TransportMechanicID: &signer,
	}
}

// readyFixture satisfies every acceptance precondition: both appraisals
// fully signed, one fully signed supply, zero remaining in the ledger.
func readyFixture() *engineFixture {
	f := newFixture()
	f.tab.rec = signedTechnicalAppraisal(models.AppraisalStatusDone)
	f.dab.rec = signedDetailAppraisal(models.AppraisalStatusDone)
	f.msb.ballots = []dbmodels.MaterialSupplyBallot{signedSupply("msb-1", models.SupplyStatusDone)}
	f.ledger.allSupplied = true
	return f
}

func TestMaybeCreateAcceptance(t *testing.T) {
	t.Run(`creates the acceptance ballot when every precondition holds`, func(t *testing.T) {
		f := readyFixture()
		require.NoError(t, f.engine().maybeCreateAcceptance("eq-1", "req-1", "user-1"))
		require.Len(t, f.arb.created, 1)
		require.Equal(t, models.AppraisalStatusPending, f.arb.created[0].Status)
		require.Equal(t, "req-1", *f.arb.created[0].RepairRequestID)
		require.Len(t, f.requests.updates, 1)
		require.Equal(t, "arb-1", f.requests.updates[0]["acceptance_id"])
		require.Contains(t, f.history.recorded, models.BallotTypeARB)
		require.Contains(t, f.work.fanouts, models.RoleTransportMechanic)
	})

	t.Run(`waits for the appraisal signatures`, func(t *testing.T) {
		f := readyFixture()
		f.tab.rec.OperatorID = nil
		require.NoError(t, f.engine().maybeCreateAcceptance("eq-1", "req-1", "user-1"))
		require.Empty(t, f.arb.created)
	})

	t.Run(`waits for an unsigned supply ballot`, func(t *testing.T) {
		f := readyFixture()
		open := signedSupply("msb-2", models.SupplyStatusInProgress)
		open.ReceiverID = nil
		f.msb.ballots = append(f.msb.ballots, open)
		require.NoError(t, f.engine().maybeCreateAcceptance("eq-1", "req-1", "user-1"))
		require.Empty(t, f.arb.created)
	})

	t.Run(`ignores draft supplies`, func(t *testing.T) {
		f := readyFixture()
		f.msb.ballots = append(f.msb.ballots, dbmodels.MaterialSupplyBallot{
			BaseModel: dbmodels.BaseModel{ID: "msb-draft"},
			Status:    models.SupplyStatusDraft,
		})
		require.NoError(t, f.engine().maybeCreateAcceptance("eq-1", "req-1", "user-1"))
		require.Len(t, f.arb.created, 1)
	})

	t.Run(`waits for the first supply ballot`, func(t *testing.T) {
		f := readyFixture()
		f.msb.ballots = nil
		require.NoError(t, f.engine().maybeCreateAcceptance("eq-1", "req-1", "user-1"))
		require.Empty(t, f.arb.created)
	})

	t.Run(`waits for the remaining materials`, func(t *testing.T) {
		f := readyFixture()
		f.ledger.allSupplied = false
		require.NoError(t, f.engine().maybeCreateAcceptance("eq-1", "req-1", "user-1"))
		require.Empty(t, f.arb.created)
	})

	t.Run(`second trigger is a no-op`, func(t *testing.T) {
		f := readyFixture()
		f.arb.pending = &dbmodels.AcceptanceBallot{
			BaseModel: dbmodels.BaseModel{ID: "arb-0"},
			Status:    models.AppraisalStatusPending,
		}
		require.NoError(t, f.engine().maybeCreateAcceptance("eq-1", "req-1", "user-1"))
		require.Empty(t, f.arb.created)
		require.Empty(t, f.work.fanouts)
	})
}

func TestSiblingsTerminal(t *testing.T) {
	closedFixture := func() *engineFixture {
		f := readyFixture()
		f.asb.rec = &dbmodels.AssignmentBallot{
			BaseModel: dbmodels.BaseModel{ID: "asb-1"},
			Status:    models.AssignStatusDone,
		}
		f.arb.rec = &dbmodels.AcceptanceBallot{
			BaseModel: dbmodels.BaseModel{ID: "arb-1"},
			Status:    models.AppraisalStatusDone,
		}
		f.qab.rec = &dbmodels.QualityAssessmentBallot{
			BaseModel: dbmodels.BaseModel{ID: "qab-1"},
			Status:    models.AssessmentStatusApproved,
		}
		return f
	}

	t.Run(`true when every sibling stage is closed`, func(t *testing.T) {
		f := closedFixture()
		terminal, err := f.engine().siblingsTerminal("req-1")
		require.NoError(t, err)
		require.True(t, terminal)
	})

	t.Run(`false while a supply ballot is open`, func(t *testing.T) {
		f := closedFixture()
		f.msb.ballots = append(f.msb.ballots, signedSupply("msb-2", models.SupplyStatusInProgress))
		terminal, err := f.engine().siblingsTerminal("req-1")
		require.NoError(t, err)
		require.False(t, terminal)
	})

	t.Run(`false before the acceptance is done`, func(t *testing.T) {
		f := closedFixture()
		f.arb.rec.Status = models.AppraisalStatusPending
		terminal, err := f.engine().siblingsTerminal("req-1")
		require.NoError(t, err)
		require.False(t, terminal)
	})

	t.Run(`false without a quality assessment`, func(t *testing.T) {
		f := closedFixture()
		f.qab.rec = nil
		terminal, err := f.engine().siblingsTerminal("req-1")
		require.NoError(t, err)
		require.False(t, terminal)
	})
}

func TestOnSettlementSigned(t *testing.T) {
	requestID := "req-1"
	settlement := func() *dbmodels.SettlementRepairBallot {
		return &dbmodels.SettlementRepairBallot{
			BaseModel:        dbmodels.BaseModel{ID: "srb-1"},
			EquipmentID:      "eq-1",
			RepairRequestID:  &requestID,
			Status:           models.AssessmentStatusInProgress,
			AccountantID:     &signer,
			DeputyForemanID:  &signer,
			ForemanID:        &signer,
			DeputyDirectorID: &signer,
		}
	}
	closedFixture := func() *engineFixture {
		f := readyFixture()
		f.asb.rec = &dbmodels.AssignmentBallot{
			BaseModel: dbmodels.BaseModel{ID: "asb-1"},
			Status:    models.AssignStatusDone,
		}
		f.arb.rec = &dbmodels.AcceptanceBallot{
			BaseModel: dbmodels.BaseModel{ID: "arb-1"},
			Status:    models.AppraisalStatusDone,
		}
		f.qab.rec = &dbmodels.QualityAssessmentBallot{
			BaseModel: dbmodels.BaseModel{ID: "qab-1"},
			Status:    models.AssessmentStatusApproved,
		}
		return f
	}

	t.Run(`closes the request after the last signature`, func(t *testing.T) {
		f := closedFixture()
		require.NoError(t, f.engine().OnSettlementSigned(settlement(), "user-1"))
		require.Len(t, f.srb.updates, 1)
		require.Equal(t, models.AssessmentStatusApproved, f.srb.updates[0]["status"])
		require.Len(t, f.requests.updates, 1)
		require.Equal(t, models.RepairStatusDone, f.requests.updates[0]["status"])
		require.Equal(t, []string{"req-1"}, f.history.closed)
		require.Equal(t, []models.EquipmentStatus{models.EquipmentStatusActive}, f.equipment.statuses)
	})

	t.Run(`waits for the missing signatures`, func(t *testing.T) {
		f := closedFixture()
		rec := settlement()
		rec.ForemanID = nil
		require.NoError(t, f.engine().OnSettlementSigned(rec, "user-1"))
		require.Empty(t, f.srb.updates)
		require.Empty(t, f.requests.updates)
	})

	t.Run(`waits for an open sibling stage`, func(t *testing.T) {
		f := closedFixture()
		f.qab.rec = nil
		require.NoError(t, f.engine().OnSettlementSigned(settlement(), "user-1"))
		require.Empty(t, f.srb.updates)
		require.Empty(t, f.equipment.statuses)
	})
}

func TestOnRejected(t *testing.T) {
	requestID := "req-1"

	t.Run(`retires successor tasks when the last supply is rejected`, func(t *testing.T) {
		f := newFixture()
		f.tab.rec = signedTechnicalAppraisal(models.AppraisalStatusPending)
		f.dab.rec = signedDetailAppraisal(models.AppraisalStatusPending)
		f.asb.open = &dbmodels.AssignmentBallot{
			BaseModel: dbmodels.BaseModel{ID: "asb-1"},
			Status:    models.AssignStatusPending,
		}
		err := f.engine().OnRejected(models.BallotTypeMSB, "eq-1", &requestID, "msb-1", "author-1", "actor-1")
		require.NoError(t, err)
		require.ElementsMatch(t, []models.BallotType{
			models.BallotTypeTAB, models.BallotTypeDAB, models.BallotTypeASB,
		}, f.work.deleted)
		require.Len(t, f.work.created, 1)
		require.Equal(t, "author-1", f.work.created[0].UserID)
		require.Equal(t, models.TaskTypeCreateBallot, f.work.created[0].TaskType)
		require.Equal(t, "msb-1", f.work.created[0].RefID)
	})

	t.Run(`keeps successor tasks while another supply is active`, func(t *testing.T) {
		f := newFixture()
		f.msb.ballots = []dbmodels.MaterialSupplyBallot{signedSupply("msb-2", models.SupplyStatusInProgress)}
		err := f.engine().OnRejected(models.BallotTypeMSB, "eq-1", &requestID, "msb-1", "author-1", "actor-1")
		require.NoError(t, err)
		require.Empty(t, f.work.deleted)
		require.Len(t, f.work.created, 1)
	})

	t.Run(`retires settlement tasks on a quality rejection`, func(t *testing.T) {
		f := newFixture()
		f.srb.rec = &dbmodels.SettlementRepairBallot{
			BaseModel: dbmodels.BaseModel{ID: "srb-1"},
			Status:    models.AssessmentStatusInProgress,
		}
		err := f.engine().OnRejected(models.BallotTypeQAB, "eq-1", &requestID, "qab-1", "director-1", "actor-1")
		require.NoError(t, err)
		require.Equal(t, []models.BallotType{models.BallotTypeSRB}, f.work.deleted)
		require.Len(t, f.work.created, 1)
		require.Equal(t, models.TaskTypeUpdateItems, f.work.created[0].TaskType)
		require.Equal(t, "director-1", f.work.created[0].UserID)
	})

	t.Run(`leaves an approved settlement alone`, func(t *testing.T) {
		f := newFixture()
		f.srb.rec = &dbmodels.SettlementRepairBallot{
			BaseModel: dbmodels.BaseModel{ID: "srb-1"},
			Status:    models.AssessmentStatusApproved,
		}
		err := f.engine().OnRejected(models.BallotTypeQAB, "eq-1", &requestID, "qab-1", "director-1", "actor-1")
		require.NoError(t, err)
		require.Empty(t, f.work.deleted)
	})

	t.Run(`skips the rework task without a known author`, func(t *testing.T) {
		f := newFixture()
		err := f.engine().OnRejected(models.BallotTypeASB, "eq-1", nil, "asb-1", "", "actor-1")
		require.NoError(t, err)
		require.Empty(t, f.work.created)
	})
}
