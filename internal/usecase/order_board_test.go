package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/test"
)

func ordersFor(owner string, n int) []model.Order {
	orders := make([]model.Order, 0, n)
	for i := 0; i < n; i++ {
		orders = append(orders, model.Order{
			ID:           fmt.Sprintf("rec%d", i),
			DrinkName:    blackTea.Name,
			Size:         model.SizeMedium,
			Ice:          model.TemperatureRegularIce,
			Sugar:        model.SugarHalf,
			Price:        30 * (i + 1),
			NumberOfCups: i + 1,
			OrderName:    owner,
		})
	}
	return orders
}

func ids(orders []model.Order) []string {
	result := make([]string, 0, len(orders))
	for _, o := range orders {
		result = append(result, o.ID)
	}
	return result
}

func TestOrderBoardRefreshComputesAggregates(t *testing.T) {
	repo := &test.OrderRepositoryStub{Orders: append(ordersFor("amy", 3), ordersFor("bob", 2)...)}
	board := NewOrderBoard("amy", repo, &test.PublisherStub{}, testLogger())

	view, err := board.View(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Orders) != 3 || !view.Loaded {
		t.Fatalf("expected 3 loaded orders, got %+v", view)
	}
	if view.Summary.TotalPrice != 30+60+90 || view.Summary.NumberOfCups != 6 || view.Badge != "6" {
		t.Fatalf("unexpected aggregates %+v badge %q", view.Summary, view.Badge)
	}
}

func TestOrderBoardRefreshFailureKeepsList(t *testing.T) {
	fail := false
	repo := &test.OrderRepositoryStub{ListFn: func(context.Context, string) ([]model.Order, error) {
		if fail {
			return nil, domainErrors.ErrBackendFailure
		}
		return ordersFor("amy", 2), nil
	}}
	board := NewOrderBoard("amy", repo, &test.PublisherStub{}, testLogger())
	ctx := context.Background()

	if err := board.Refresh(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fail = true
	if err := board.Refresh(ctx); !errors.Is(err, domainErrors.ErrBackendFailure) {
		t.Fatalf("expected backend failure, got %v", err)
	}
	if got := board.Snapshot(); len(got.Orders) != 2 {
		t.Fatalf("expected list to be unchanged, got %d", len(got.Orders))
	}
}

func TestOrderBoardDeleteRowRemovesExactlyThatRow(t *testing.T) {
	const n = 5
	for i := 0; i < n; i++ {
		t.Run(fmt.Sprintf("row %d", i), func(t *testing.T) {
			orders := ordersFor("amy", n)
			repo := &test.OrderRepositoryStub{Orders: orders}
			publisher := &test.PublisherStub{}
			board := NewOrderBoard("amy", repo, publisher, testLogger())
			ctx := context.Background()
			if err := board.Refresh(ctx); err != nil {
				t.Fatalf("refresh: %v", err)
			}

			if err := board.DeleteRow(ctx, i); err != nil {
				t.Fatalf("delete row: %v", err)
			}

			remaining := slices.Delete(slices.Clone(orders), i, i+1)
			view := board.Snapshot()
			if !slices.Equal(ids(view.Orders), ids(remaining)) {
				t.Fatalf("expected %v, got %v", ids(remaining), ids(view.Orders))
			}
			if view.Summary != model.Summarize(remaining) {
				t.Fatalf("expected totals %+v, got %+v", model.Summarize(remaining), view.Summary)
			}
			if !slices.Equal(repo.Deleted, []string{orders[i].ID}) {
				t.Fatalf("unexpected backend deletes %v", repo.Deleted)
			}
			if kinds := publisher.Kinds(); len(kinds) != 1 || kinds[0] != model.OrderDeleted {
				t.Fatalf("expected one deleted event, got %v", kinds)
			}
		})
	}
}

func TestOrderBoardDeleteFailureLeavesList(t *testing.T) {
	repo := &test.OrderRepositoryStub{
		Orders:   ordersFor("amy", 3),
		DeleteFn: func(context.Context, string) error { return domainErrors.ErrBackendFailure },
	}
	publisher := &test.PublisherStub{}
	board := NewOrderBoard("amy", repo, publisher, testLogger())
	ctx := context.Background()
	_ = board.Refresh(ctx)

	if err := board.DeleteRow(ctx, 1); !errors.Is(err, domainErrors.ErrBackendFailure) {
		t.Fatalf("expected backend failure, got %v", err)
	}
	if len(board.Snapshot().Orders) != 3 || len(publisher.Kinds()) != 0 {
		t.Fatal("expected unchanged list and no event")
	}
	if err := board.DeleteRow(ctx, 7); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for out of range row, got %v", err)
	}
	if err := board.Delete(ctx, "someone-else"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign id, got %v", err)
	}
}

func TestOrderBoardDropsStaleRefresh(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var mu sync.Mutex
	call := 0
	repo := &test.OrderRepositoryStub{ListFn: func(context.Context, string) ([]model.Order, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			return ordersFor("amy", 1), nil
		}
		return ordersFor("amy", 4), nil
	}}
	board := NewOrderBoard("amy", repo, &test.PublisherStub{}, testLogger())
	ctx := context.Background()

	done := make(chan error)
	go func() { done <- board.Refresh(ctx) }()
	<-started

	if err := board.Refresh(ctx); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	if got := len(board.Snapshot().Orders); got != 4 {
		t.Fatalf("expected newer refresh to win, got %d orders", got)
	}
}

func TestOrderBoardCloseIgnoresLateCompletions(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	repo := &test.OrderRepositoryStub{ListFn: func(context.Context, string) ([]model.Order, error) {
		close(started)
		<-release
		return ordersFor("amy", 2), nil
	}}
	board := NewOrderBoard("amy", repo, &test.PublisherStub{}, testLogger())

	done := make(chan error)
	go func() { done <- board.Refresh(context.Background()) }()
	<-started
	board.Close()
	close(release)
	<-done

	view := board.Snapshot()
	if view.Loaded || len(view.Orders) != 0 {
		t.Fatalf("closed board must not be mutated, got %+v", view)
	}
	if !board.Closed() {
		t.Fatal("expected board to report closed")
	}
	if err := board.Refresh(context.Background()); !errors.Is(err, domainErrors.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestOrderBoardOnOrdersChanged(t *testing.T) {
	orders := ordersFor("amy", 3)
	repo := &test.OrderRepositoryStub{Orders: orders}
	board := NewOrderBoard("amy", repo, &test.PublisherStub{}, testLogger())
	ctx := context.Background()
	_ = board.Refresh(ctx)

	if err := board.OnOrdersChanged(ctx, model.NewOrderEvent(model.OrderDeleted, "rec1", "amy")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(ids(board.Snapshot().Orders), []string{"rec0", "rec2"}) {
		t.Fatalf("expected rec1 to be forgotten, got %v", ids(board.Snapshot().Orders))
	}
	if len(repo.Lists) != 1 {
		t.Fatalf("deleted event must not refetch, got %d lists", len(repo.Lists))
	}

	if err := board.OnOrdersChanged(ctx, model.NewOrderEvent(model.OrderCreated, "rec9", "amy")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.Lists) != 2 || len(board.Snapshot().Orders) != 3 {
		t.Fatalf("created event must refetch, got %d lists", len(repo.Lists))
	}
}

func TestOrderBoardChangeQuantity(t *testing.T) {
	repo := &test.OrderRepositoryStub{Orders: ordersFor("amy", 2)}
	publisher := &test.PublisherStub{}
	board := NewOrderBoard("amy", repo, publisher, testLogger())
	ctx := context.Background()
	_ = board.Refresh(ctx)

	cases := []struct {
		name  string
		cups  int
		price int
		want  error
	}{
		{"zero cups", 0, 30, domainErrors.ErrInvalidQuantity},
		{"negative price", 1, -1, domainErrors.ErrInvalidPrice},
	}
	for _, tc := range cases {
		if _, err := board.ChangeQuantity(ctx, "rec0", tc.cups, tc.price); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(repo.Updated) != 0 {
		t.Fatal("invalid input must not reach the backend")
	}

	updated, err := board.ChangeQuantity(ctx, "rec0", 3, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.NumberOfCups != 3 || updated.Price != 90 || updated.DrinkName != blackTea.Name {
		t.Fatalf("unexpected order %+v", updated)
	}
	call := repo.Updated[0]
	if call.ID != "rec0" || call.Fields.Size != model.SizeMedium || call.Fields.Sugar != model.SugarHalf {
		t.Fatalf("expected row options to be resent, got %+v", call)
	}
	view := board.Snapshot()
	if view.Summary.NumberOfCups != 5 || view.Summary.TotalPrice != 90+60 {
		t.Fatalf("unexpected totals %+v", view.Summary)
	}
	if kinds := publisher.Kinds(); len(kinds) != 1 || kinds[0] != model.OrderUpdated {
		t.Fatalf("expected updated event, got %v", kinds)
	}
}

func TestOrderBoardWritesSurviveCallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	failIfCancelled := func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	}
	repo := &test.OrderRepositoryStub{
		Orders:   ordersFor("amy", 2),
		DeleteFn: func(ctx context.Context, _ string) error { return failIfCancelled(ctx) },
		UpdateFn: func(ctx context.Context, id string, fields model.OrderFields) (*model.Order, error) {
			if err := failIfCancelled(ctx); err != nil {
				return nil, err
			}
			return &model.Order{ID: id, Price: fields.Price, NumberOfCups: fields.NumberOfCups}, nil
		},
	}
	publisher := &test.PublisherStub{}
	board := NewOrderBoard("amy", repo, publisher, testLogger())
	_ = board.Refresh(context.Background())

	if _, err := board.ChangeQuantity(ctx, "rec0", 2, 60); err != nil {
		t.Fatalf("caller cancel must not abort the update, got %v", err)
	}
	if err := board.Delete(ctx, "rec1"); err != nil {
		t.Fatalf("caller cancel must not abort the delete, got %v", err)
	}
	if kinds := publisher.Kinds(); !slices.Equal(kinds, []model.OrderEventKind{model.OrderUpdated, model.OrderDeleted}) {
		t.Fatalf("expected update and delete events, got %v", kinds)
	}
	for i, err := range publisher.CtxErrs {
		if err != nil {
			t.Fatalf("event %d published on a cancelled context: %v", i, err)
		}
	}
	if got := ids(board.Snapshot().Orders); !slices.Equal(got, []string{"rec0"}) {
		t.Fatalf("expected deleted order gone from cache, got %v", got)
	}
}
