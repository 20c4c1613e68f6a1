package battle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/battle"
	battlerepo "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/battle"
	battlerepomock "github.com/KirkDiggler/rpg-combat-tracker/internal/repositories/battle/mock"
)

// recordingSessions runs fn inline and remembers which battles were locked
type recordingSessions struct {
	ids  []int64
	held bool
}

func (r *recordingSessions) Exclusive(battleID int64, fn func() error) error {
	r.ids = append(r.ids, battleID)
	r.held = true
	defer func() { r.held = false }()
	return fn()
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *battlerepomock.MockRepository
	sessions     *recordingSessions
	orchestrator battle.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = battlerepomock.NewMockRepository(s.ctrl)
	s.sessions = &recordingSessions{}
	s.ctx = context.Background()

	var err error
	s.orchestrator, err = battle.NewOrchestrator(&battle.Config{
		BattleRepo: s.mockRepo,
		Sessions:   s.sessions,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func strPtr(v string) *string { return &v }

func (s *OrchestratorTestSuite) TestNewOrchestratorRequiresRepo() {
	_, err := battle.NewOrchestrator(&battle.Config{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCreateBattleTrimsForm() {
	s.mockRepo.EXPECT().
		Create(s.ctx, battlerepo.CreateInput{Name: "Goblin Ambush", Notes: strPtr("near the bridge")}).
		Return(&battlerepo.CreateOutput{Battle: &entities.Battle{ID: 1, Name: "Goblin Ambush"}}, nil)

	out, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{
		Name:  "  Goblin Ambush ",
		Notes: strPtr(" near the bridge "),
	})
	s.Require().NoError(err)
	s.Equal(int64(1), out.Battle.ID)
}

func (s *OrchestratorTestSuite) TestCreateBattleBlankNotesBecomeNil() {
	s.mockRepo.EXPECT().
		Create(s.ctx, battlerepo.CreateInput{Name: "Dragon", Notes: nil}).
		Return(&battlerepo.CreateOutput{Battle: &entities.Battle{ID: 2, Name: "Dragon"}}, nil)

	_, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{Name: "Dragon", Notes: strPtr("   ")})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestCreateBattleRejectsBlankName() {
	_, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{Name: "   "})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.CreateBattle(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCreateBattleTransportFailure() {
	s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("connection refused"))

	_, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{Name: "Dragon"})
	s.True(errors.IsUnavailable(err))
}

func (s *OrchestratorTestSuite) TestUpdateBattleKeepsRoster() {
	roster := []entities.Combatant{
		{InternalID: "a", Name: "Goblin", HPMax: 7, HPCurrent: 3, Initiative: 14},
	}
	s.mockRepo.EXPECT().Get(s.ctx, battlerepo.GetInput{ID: 5}).
		Return(&battlerepo.GetOutput{Battle: &entities.Battle{ID: 5, Name: "Old", Combatants: roster}}, nil)
	s.mockRepo.EXPECT().Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input battlerepo.UpdateInput) (*battlerepo.UpdateOutput, error) {
			s.True(s.sessions.held)
			s.Equal("New", input.Battle.Name)
			s.Nil(input.Battle.Notes)
			s.Equal(roster, input.Battle.Combatants)
			return &battlerepo.UpdateOutput{Battle: input.Battle}, nil
		})

	out, err := s.orchestrator.UpdateBattle(s.ctx, &battle.UpdateBattleInput{BattleID: 5, Name: "New"})
	s.Require().NoError(err)
	s.Equal("New", out.Battle.Name)
	s.Equal([]int64{5}, s.sessions.ids)
}

func (s *OrchestratorTestSuite) TestUpdateBattleNotFound() {
	s.mockRepo.EXPECT().Get(s.ctx, battlerepo.GetInput{ID: 9}).
		Return(nil, errors.NotFound("battle 9 not found"))

	_, err := s.orchestrator.UpdateBattle(s.ctx, &battle.UpdateBattleInput{BattleID: 9, Name: "x"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestUpdateBattleValidatesBeforeLoading() {
	_, err := s.orchestrator.UpdateBattle(s.ctx, &battle.UpdateBattleInput{BattleID: 5, Name: ""})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.UpdateBattle(s.ctx, &battle.UpdateBattleInput{Name: "x"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDeleteBattle() {
	s.mockRepo.EXPECT().Delete(s.ctx, battlerepo.DeleteInput{ID: 3}).
		DoAndReturn(func(context.Context, battlerepo.DeleteInput) (*battlerepo.DeleteOutput, error) {
			s.True(s.sessions.held)
			return &battlerepo.DeleteOutput{}, nil
		})

	_, err := s.orchestrator.DeleteBattle(s.ctx, &battle.DeleteBattleInput{BattleID: 3})
	s.Require().NoError(err)
	s.Equal([]int64{3}, s.sessions.ids)
}

func (s *OrchestratorTestSuite) TestGetBattleSortsRoster() {
	s.mockRepo.EXPECT().Get(s.ctx, battlerepo.GetInput{ID: 4}).
		Return(&battlerepo.GetOutput{Battle: &entities.Battle{ID: 4, Name: "Crypt", Combatants: []entities.Combatant{
			{InternalID: "slow", Initiative: 3},
			{InternalID: "fast", Initiative: 19},
			{InternalID: "mid", Initiative: 11},
		}}}, nil)

	out, err := s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{BattleID: 4})
	s.Require().NoError(err)
	s.Require().Len(out.Battle.Combatants, 3)
	s.Equal("fast", out.Battle.Combatants[0].InternalID)
	s.Equal("mid", out.Battle.Combatants[1].InternalID)
	s.Equal("slow", out.Battle.Combatants[2].InternalID)
}

func (s *OrchestratorTestSuite) TestListBattles() {
	s.mockRepo.EXPECT().List(s.ctx, battlerepo.ListInput{}).
		Return(&battlerepo.ListOutput{Battles: []*entities.Battle{{ID: 1}, {ID: 2}}}, nil)

	out, err := s.orchestrator.ListBattles(s.ctx, &battle.ListBattlesInput{})
	s.Require().NoError(err)
	s.Len(out.Battles, 2)
}
