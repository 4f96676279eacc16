package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"compass_sync/internal/config"
	"compass_sync/internal/domain"
	"compass_sync/internal/service/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 11, 4, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func primary(topic string, hasFinancial bool) *domain.LeaningRecord {
	return &domain.LeaningRecord{
		Topic:                     topic,
		Lean:                      "left",
		Rating:                    3,
		Description:               "c",
		HasFinancialContributions: hasFinancial,
	}
}

func financialRecord(topic string) *domain.FinancialContributionsRecord {
	return &domain.FinancialContributionsRecord{
		Topic:       topic,
		CommitteeID: "C1",
		SummaryText: "summary for " + topic,
		PercentSplit: &domain.PercentSplit{
			TotalToPartyA: 1, TotalToPartyB: 1, PercentToPartyA: 50, PercentToPartyB: 50, TotalContributions: 2,
		},
	}
}

// ReconcilerTestSuite exercises the reconciler against the in-memory store.
type ReconcilerTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memoryStore
	clock *fakeClock
}

func (s *ReconcilerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newMemoryStore()
	s.clock = newFakeClock()
}

func TestReconcilerTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerTestSuite))
}

func (s *ReconcilerTestSuite) newReconciler(orphanTTL time.Duration) *Reconciler {
	r := NewReconciler(s.store, s.store, s.store, nil, testLogger(), config.CacheConfig{OrphanTTL: orphanTTL})
	r.now = s.clock.Now
	return r
}

func (s *ReconcilerTestSuite) TestUpsertThenAttach() {
	r := s.newReconciler(0)

	_, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().NoError(err)

	res, err := r.AttachFinancial(s.ctx, "Acme", financialRecord("Acme"))
	s.Require().NoError(err)
	s.False(res.Orphaned)

	all, err := r.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal("left", all[0].Lean)
	s.Equal(financialRecord("Acme"), all[0].Financial)
	s.False(all[0].NeedsFinancial())
}

func (s *ReconcilerTestSuite) TestUpsertUsesGivenTopic() {
	r := s.newReconciler(0)

	answer, err := r.UpsertPrimary(s.ctx, "Acme Corp", primary("acme", false))
	s.Require().NoError(err)
	s.Equal("Acme Corp", answer.Topic)
}

func (s *ReconcilerTestSuite) TestUpsertNeverClearsFinancial() {
	r := s.newReconciler(0)

	_, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().NoError(err)
	_, err = r.AttachFinancial(s.ctx, "Acme", financialRecord("Acme"))
	s.Require().NoError(err)

	updated := primary("Acme", true)
	updated.Lean = "right"
	answer, err := r.UpsertPrimary(s.ctx, "Acme", updated)
	s.Require().NoError(err)

	s.Equal("right", answer.Lean)
	s.NotNil(answer.Financial)
}

func (s *ReconcilerTestSuite) TestIdempotentUpsert() {
	r := s.newReconciler(0)

	first, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", false))
	s.Require().NoError(err)
	second, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", false))
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)

	all, err := r.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *ReconcilerTestSuite) TestOrphanedAttachIsDroppedByDefault() {
	r := s.newReconciler(0)

	res, err := r.AttachFinancial(s.ctx, "Acme", financialRecord("Acme"))
	s.Require().NoError(err)
	s.True(res.Orphaned)
	s.False(res.Buffered)

	all, err := r.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)

	answer, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().NoError(err)
	s.Nil(answer.Financial)
	s.True(answer.NeedsFinancial())
}

func (s *ReconcilerTestSuite) TestOrphanedAttachIsReplayedWhenBuffered() {
	r := s.newReconciler(10 * time.Minute)

	res, err := r.AttachFinancial(s.ctx, "Acme", financialRecord("Acme"))
	s.Require().NoError(err)
	s.True(res.Orphaned)
	s.True(res.Buffered)

	answer, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().NoError(err)
	s.Equal(financialRecord("Acme"), answer.Financial)

	got, err := r.Get(s.ctx, "Acme")
	s.Require().NoError(err)
	s.Equal(financialRecord("Acme"), got.Financial)
	s.Equal(0, r.orphans.size())
}

func (s *ReconcilerTestSuite) TestBufferedOrphanExpires() {
	r := s.newReconciler(time.Minute)

	_, err := r.AttachFinancial(s.ctx, "Acme", financialRecord("Acme"))
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Minute)

	answer, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().NoError(err)
	s.Nil(answer.Financial)
}

func (s *ReconcilerTestSuite) TestBufferedOrphanRestoredOnFailedUpsert() {
	r := s.newReconciler(time.Minute)

	_, err := r.AttachFinancial(s.ctx, "Acme", financialRecord("Acme"))
	s.Require().NoError(err)

	s.store.failReplace = errors.New("disk full")
	_, err = r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().Error(err)

	all, err := r.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
	s.Equal(1, r.orphans.size())

	s.store.failReplace = nil
	answer, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().NoError(err)
	s.NotNil(answer.Financial)
}

func (s *ReconcilerTestSuite) TestFailedAttachLeavesNoPartialState() {
	r := s.newReconciler(0)

	_, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().NoError(err)

	s.store.failReplace = errors.New("disk full")
	_, err = r.AttachFinancial(s.ctx, "Acme", financialRecord("Acme"))
	s.Require().Error(err)

	got, err := r.Get(s.ctx, "Acme")
	s.Require().NoError(err)
	s.Nil(got.Financial)
}

func (s *ReconcilerTestSuite) TestRemoveIsIdempotent() {
	r := s.newReconciler(0)

	_, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", false))
	s.Require().NoError(err)

	s.NoError(r.Remove(s.ctx, "NoSuchTopic"))

	all, err := r.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)

	s.NoError(r.Remove(s.ctx, "Acme"))
	s.NoError(r.Remove(s.ctx, "Acme"))

	all, err = r.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *ReconcilerTestSuite) TestRemoveDropsBufferedOrphan() {
	r := s.newReconciler(time.Minute)

	_, err := r.AttachFinancial(s.ctx, "Acme", financialRecord("Acme"))
	s.Require().NoError(err)
	s.NoError(r.Remove(s.ctx, "Acme"))

	answer, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().NoError(err)
	s.Nil(answer.Financial)
}

func (s *ReconcilerTestSuite) TestListAllMostRecentFirst() {
	r := s.newReconciler(0)

	for _, topic := range []string{"First", "Second", "Third"} {
		_, err := r.UpsertPrimary(s.ctx, topic, primary(topic, false))
		s.Require().NoError(err)
	}
	_, err := r.UpsertPrimary(s.ctx, "First", primary("First", false))
	s.Require().NoError(err)

	all, err := r.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("First", all[0].Topic)
	s.Equal("Third", all[1].Topic)
	s.Equal("Second", all[2].Topic)
}

func (s *ReconcilerTestSuite) TestTopicsAreExactMatch() {
	r := s.newReconciler(0)

	_, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
	s.Require().NoError(err)

	res, err := r.AttachFinancial(s.ctx, "acme ", financialRecord("acme "))
	s.Require().NoError(err)
	s.True(res.Orphaned)

	topics, err := r.MissingFinancialTopics(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Acme"}, topics)
}

func (s *ReconcilerTestSuite) TestConcurrentWritesKeepOneRecord() {
	r := s.newReconciler(0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := r.UpsertPrimary(s.ctx, "Acme", primary("Acme", true))
			s.NoError(err)
		}()
		go func() {
			defer wg.Done()
			_, err := r.AttachFinancial(s.ctx, "Acme", financialRecord("Acme"))
			s.NoError(err)
		}()
	}
	wg.Wait()

	all, err := r.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

// ReconcilerMockTestSuite checks store and publisher interactions.
type ReconcilerMockTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	answers    *mocks.MockAnswerStore
	financials *mocks.MockFinancialStore
	txManager  *mocks.MockTransactionManager
	publisher  *mocks.MockPublisher

	reconciler *Reconciler
}

func (s *ReconcilerMockTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.answers = mocks.NewMockAnswerStore(s.ctrl)
	s.financials = mocks.NewMockFinancialStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	runFn := func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	}
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runFn).AnyTimes()
	s.txManager.EXPECT().WithReadTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runFn).AnyTimes()

	s.reconciler = NewReconciler(
		s.answers,
		s.financials,
		s.txManager,
		s.publisher,
		testLogger(),
		config.CacheConfig{},
	)
}

func (s *ReconcilerMockTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReconcilerMockTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerMockTestSuite))
}

func (s *ReconcilerMockTestSuite) TestUpsertPublishesChange() {
	ctx := context.Background()
	answer := &domain.CachedAnswer{ID: 7, Topic: "Acme"}

	s.answers.EXPECT().UpsertPrimary(ctx, gomock.Any(), gomock.Any()).Return(answer, true, nil)
	s.financials.EXPECT().GetByAnswerIDs(ctx, []int64{7}).Return(map[int64]*domain.FinancialContributionsRecord{}, nil)
	s.publisher.EXPECT().Publish(ctx, &domain.ChangeEvent{
		Action: domain.ActionPrimaryUpserted,
		Topic:  "Acme",
		Answer: answer,
	}).Return(nil)

	got, err := s.reconciler.UpsertPrimary(ctx, "Acme", primary("Acme", false))
	s.NoError(err)
	s.Equal(int64(7), got.ID)
}

func (s *ReconcilerMockTestSuite) TestPublishFailureIsNotFatal() {
	ctx := context.Background()

	s.answers.EXPECT().Delete(ctx, "Acme").Return(true, nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("broker down"))

	s.NoError(s.reconciler.Remove(ctx, "Acme"))
}

func (s *ReconcilerMockTestSuite) TestRemoveAbsentDoesNotPublish() {
	ctx := context.Background()

	s.answers.EXPECT().Delete(ctx, "NoSuchTopic").Return(false, nil)

	s.NoError(s.reconciler.Remove(ctx, "NoSuchTopic"))
}

func (s *ReconcilerMockTestSuite) TestUpsertStoreError() {
	ctx := context.Background()

	s.answers.EXPECT().UpsertPrimary(ctx, gomock.Any(), gomock.Any()).Return(nil, false, errors.New("db down"))

	_, err := s.reconciler.UpsertPrimary(ctx, "Acme", primary("Acme", false))
	s.Error(err)
	s.Contains(err.Error(), "upsert answer")
}

func (s *ReconcilerMockTestSuite) TestAttachOrphanDoesNotTouchFinancialStore() {
	ctx := context.Background()

	s.answers.EXPECT().LockIDByTopic(ctx, "Acme").Return(int64(0), false, nil)

	res, err := s.reconciler.AttachFinancial(ctx, "Acme", financialRecord("Acme"))
	s.NoError(err)
	s.True(res.Orphaned)
}

func (s *ReconcilerMockTestSuite) TestAttachPublishesFullAnswer() {
	ctx := context.Background()
	rec := financialRecord("Acme")

	s.answers.EXPECT().LockIDByTopic(ctx, "Acme").Return(int64(7), true, nil)
	s.financials.EXPECT().Replace(ctx, int64(7), rec).Return(nil)
	s.answers.EXPECT().GetByTopic(ctx, "Acme").Return(&domain.CachedAnswer{ID: 7, Topic: "Acme"}, nil)
	s.financials.EXPECT().GetByAnswerIDs(ctx, []int64{7}).Return(map[int64]*domain.FinancialContributionsRecord{7: rec}, nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.ChangeEvent) error {
			s.Equal(domain.ActionFinancialAttached, event.Action)
			s.Equal(rec, event.Answer.Financial)
			return nil
		},
	)

	res, err := s.reconciler.AttachFinancial(ctx, "Acme", rec)
	s.NoError(err)
	s.False(res.Orphaned)
}
