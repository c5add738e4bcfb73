package container

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/go-container-controller/internal/adapters/storage"
	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/platform/lifecycle"
	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// scenarioState holds state shared across step definitions within a scenario.
type scenarioState struct {
	controller *Controller
	notifier   *lifecycle.Notifier
	result     SaveResult

	// groups keeps background contexts reachable for the whole scenario.
	groups map[string]*WorkContext
}

func (s *scenarioState) reset() {
	if s.controller != nil {
		_ = s.controller.Close()
	}
	for _, wc := range s.groups {
		runtime.KeepAlive(wc)
	}
	*s = scenarioState{groups: map[string]*WorkContext{}}
}

func (s *scenarioState) aControllerWithAnInMemoryStore(name string) error {
	engine, err := storage.NewEngine([]ports.StoreDescription{memoryStore(name)}, storage.WithLogger(quietLogger()))
	if err != nil {
		return err
	}

	s.notifier = lifecycle.NewNotifier()
	s.controller, err = New(name,
		WithEngine(engine),
		WithLifecycleSource(s.notifier),
		WithLogger(quietLogger()),
		WithFatalHandler(func(error) {}),
	)
	if err != nil {
		return err
	}

	select {
	case <-s.controller.Ready():
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("controller did not become ready")
	}
}

func (s *scenarioState) group(key string) *WorkContext {
	if wc, ok := s.groups[key]; ok {
		return wc
	}

	wc := s.controller.BackgroundContext(key)
	s.groups[key] = wc

	return wc
}

func (s *scenarioState) insert(entity, id, key string, opts ...TaskOption) error {
	s.group(key)

	done := make(chan SaveResult, 1)
	opts = append(opts, WithCompletion(func(r SaveResult) { done <- r }))

	s.controller.PerformBackgroundTaskAndSave(context.Background(), key, func(_ context.Context, wc *WorkContext) {
		wc.InsertRecord(&domain.Record{Entity: entity, ID: id, Attributes: map[string]any{"source": "bdd"}})
	}, opts...)

	select {
	case s.result = <-done:
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("task did not complete")
	}
}

func (s *scenarioState) iInsertInGroup(entity, id, key string) error {
	return s.insert(entity, id, key)
}

func (s *scenarioState) iInsertInGroupKeepingChanges(entity, id, key string) error {
	return s.insert(entity, id, key, WithErrorAction(SaveErrorActionNone))
}

func (s *scenarioState) wasSavedInGroup(entity, id, key string) error {
	if err := s.insert(entity, id, key); err != nil {
		return err
	}

	return s.theSaveSucceeds()
}

func (s *scenarioState) theSaveSucceeds() error {
	if _, ok := s.result.(SaveSuccess); !ok {
		return fmt.Errorf("expected success, got %#v", s.result)
	}

	return nil
}

func (s *scenarioState) theSaveFailsWithAConflict() error {
	failed, ok := s.result.(SaveError)
	if !ok {
		return fmt.Errorf("expected a save error, got %#v", s.result)
	}
	if !domain.IsConflict(failed) {
		return fmt.Errorf("expected a conflict, got %v", failed.Cause)
	}

	return nil
}

func (s *scenarioState) groupHasNoPendingChanges(key string) error {
	if s.group(key).HasChanges() {
		return fmt.Errorf("group %q still has pending changes", key)
	}

	return nil
}

func (s *scenarioState) groupHasPendingChanges(key string) error {
	if !s.group(key).HasChanges() {
		return fmt.Errorf("group %q has no pending changes", key)
	}

	return nil
}

func (s *scenarioState) theMainContextCanFetch(entity, id string) error {
	var err error
	s.controller.MainContext().PerformAndWait(func(wc *WorkContext) {
		_, err = wc.Fetch(context.Background(), entity, id)
	})

	return err
}

func (s *scenarioState) theMainContextHasAPending(entity, id string) error {
	s.controller.MainContext().InsertRecord(&domain.Record{Entity: entity, ID: id})
	return nil
}

func (s *scenarioState) theApplicationTerminates() error {
	s.notifier.Post(ports.EventTerminating)
	return nil
}

func (s *scenarioState) theStoreContains(entity, id string) error {
	_, err := s.controller.Engine().Fetch(context.Background(), entity, id)
	return err
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	s := &scenarioState{groups: map[string]*WorkContext{}}

	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		s.reset()
		return ctx, nil
	})

	ctx.Step(`^a controller named "([^"]*)" with an in-memory store$`, s.aControllerWithAnInMemoryStore)
	ctx.Step(`^I insert a "([^"]*)" with id "([^"]*)" in group "([^"]*)"$`, s.iInsertInGroup)
	ctx.Step(`^I insert a "([^"]*)" with id "([^"]*)" in group "([^"]*)" keeping changes on error$`, s.iInsertInGroupKeepingChanges)
	ctx.Step(`^a "([^"]*)" with id "([^"]*)" was saved in group "([^"]*)"$`, s.wasSavedInGroup)
	ctx.Step(`^the save succeeds$`, s.theSaveSucceeds)
	ctx.Step(`^the save fails with a conflict$`, s.theSaveFailsWithAConflict)
	ctx.Step(`^group "([^"]*)" has no pending changes$`, s.groupHasNoPendingChanges)
	ctx.Step(`^group "([^"]*)" has pending changes$`, s.groupHasPendingChanges)
	ctx.Step(`^the main context can fetch "([^"]*)" "([^"]*)"$`, s.theMainContextCanFetch)
	ctx.Step(`^the main context has a pending "([^"]*)" with id "([^"]*)"$`, s.theMainContextHasAPending)
	ctx.Step(`^the application terminates$`, s.theApplicationTerminates)
	ctx.Step(`^the store contains "([^"]*)" "([^"]*)"$`, s.theStoreContains)
}

// TestFeatures runs the GoDog BDD scenarios.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
