package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

// SessionView is a snapshot of a customization session.
type SessionView struct {
	ID           string
	Owner        string
	Drink        model.Drink
	OrderID      string
	NumberOfCups int
	Size         model.Size
	Temperature  model.Temperature
	Sugar        model.Sugar
	AddOns       []model.AddOn
	Total        int
	Summary      string
	State        SelectionState
	Missing      []model.OptionCategory
}

// EditMode reports whether the session edits an existing order.
func (v SessionView) EditMode() bool {
	return v.OrderID != ""
}

type session struct {
	id           string
	owner        string
	drink        model.Drink
	orderID      string
	numberOfCups int

	mu         sync.Mutex
	selection  *Selection
	closed     bool
	submitting bool
}

func (s *session) view() SessionView {
	return SessionView{
		ID:           s.id,
		Owner:        s.owner,
		Drink:        s.drink,
		OrderID:      s.orderID,
		NumberOfCups: s.numberOfCups,
		Size:         s.selection.Size(),
		Temperature:  s.selection.Temperature(),
		Sugar:        s.selection.Sugar(),
		AddOns:       s.selection.AddOns(),
		Total:        s.selection.Total(),
		Summary:      s.selection.DisplaySummary(),
		State:        s.selection.State(),
		Missing:      s.selection.Missing(),
	}
}

// CustomizationUseCase owns the open customization forms and submits them.
type CustomizationUseCase struct {
	menu      *MenuUseCase
	boards    *OrderUseCase
	orders    repository.OrderRepository
	idem      repository.IdempotencyStore
	publisher EventPublisher
	policy    RequiredPolicy
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewCustomizationUseCase constructs CustomizationUseCase.
func NewCustomizationUseCase(
	menu *MenuUseCase,
	boards *OrderUseCase,
	orders repository.OrderRepository,
	idem repository.IdempotencyStore,
	publisher EventPublisher,
	policy RequiredPolicy,
	logger *slog.Logger,
) *CustomizationUseCase {
	return &CustomizationUseCase{
		menu:      menu,
		boards:    boards,
		orders:    orders,
		idem:      idem,
		publisher: publisher,
		policy:    policy,
		logger:    logger,
		sessions:  make(map[string]*session),
	}
}

// Open starts a fresh form for a catalog drink.
func (u *CustomizationUseCase) Open(ctx context.Context, owner, drinkID string) (SessionView, error) {
	drink, err := u.menu.Drink(ctx, drinkID)
	if err != nil {
		return SessionView{}, err
	}
	s := &session{
		id:           uuid.NewString(),
		owner:        owner,
		drink:        drink,
		numberOfCups: 1,
		selection:    NewSelection(drink),
	}
	return u.register(s), nil
}

// OpenForOrder starts a form pre-populated from one of the owner's orders.
func (u *CustomizationUseCase) OpenForOrder(ctx context.Context, owner, orderID string) (SessionView, error) {
	order, err := u.boards.Find(ctx, owner, orderID)
	if err != nil {
		return SessionView{}, err
	}
	drink, err := u.menu.DrinkByName(ctx, order.DrinkName)
	if err != nil {
		return SessionView{}, err
	}
	cups := order.NumberOfCups
	if cups < 1 {
		cups = 1
	}
	s := &session{
		id:           uuid.NewString(),
		owner:        owner,
		drink:        drink,
		orderID:      order.ID,
		numberOfCups: cups,
		selection:    SelectionFromOrder(drink, order),
	}
	return u.register(s), nil
}

func (u *CustomizationUseCase) register(s *session) SessionView {
	u.mu.Lock()
	u.sessions[s.id] = s
	u.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (u *CustomizationUseCase) lookup(owner, id string) (*session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[id]
	if !ok || s.owner != owner {
		return nil, domainErrors.ErrNotFound
	}
	return s, nil
}

func (u *CustomizationUseCase) Get(owner, id string) (SessionView, error) {
	s, err := u.lookup(owner, id)
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

func (u *CustomizationUseCase) SelectOption(owner, id string, category model.OptionCategory, choice string) (SessionView, error) {
	return u.mutate(owner, id, func(sel *Selection) error {
		return sel.SelectOption(category, choice)
	})
}

func (u *CustomizationUseCase) ToggleAddOn(owner, id, name string) (SessionView, error) {
	addOn, err := model.ParseAddOn(name)
	if err != nil {
		return SessionView{}, err
	}
	return u.mutate(owner, id, func(sel *Selection) error {
		_, err := sel.ToggleAddOn(addOn)
		return err
	})
}

func (u *CustomizationUseCase) mutate(owner, id string, fn func(*Selection) error) (SessionView, error) {
	s, err := u.lookup(owner, id)
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return SessionView{}, domainErrors.ErrSessionClosed
	}
	if err := fn(s.selection); err != nil {
		return SessionView{}, err
	}
	return s.view(), nil
}

// Cancel discards the form. A submit still in flight completes without touching it.
func (u *CustomizationUseCase) Cancel(owner, id string) error {
	s, err := u.lookup(owner, id)
	if err != nil {
		return err
	}
	u.discard(s)
	return nil
}

func (u *CustomizationUseCase) discard(s *session) {
	u.mu.Lock()
	if cur, ok := u.sessions[s.id]; ok && cur == s {
		delete(u.sessions, s.id)
	}
	u.mu.Unlock()

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Submit validates the form and creates or updates the order. On failure the
// session stays open so the user may retry.
func (u *CustomizationUseCase) Submit(ctx context.Context, owner, id, idempotencyKey string) (*model.Order, error) {
	// A disconnecting client must not abort a write the backend may already have applied.
	ctx = context.WithoutCancel(ctx)
	if idempotencyKey != "" {
		if order, ok := u.recall(ctx, owner, idempotencyKey); ok {
			return order, nil
		}
	}

	s, err := u.lookup(owner, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, domainErrors.ErrSessionClosed
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, domainErrors.ErrDuplicateSubmit
	}
	if err := s.selection.ValidateRequired(u.policy); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	var (
		fields model.OrderFields
		kind   model.OrderEventKind
	)
	if s.orderID != "" {
		fields = s.selection.UpdateFields(s.numberOfCups)
		kind = model.OrderUpdated
	} else {
		fields = s.selection.CreateFields(s.drink, s.owner)
		kind = model.OrderCreated
	}
	s.submitting = true
	s.mu.Unlock()

	order, err := u.submit(ctx, s, fields, idempotencyKey)

	s.mu.Lock()
	s.submitting = false
	if err == nil && !s.closed {
		s.selection.MarkSubmitted()
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	u.publisher.Publish(ctx, model.NewOrderEvent(kind, order.ID, s.owner))
	u.discard(s)
	return order, nil
}

func (u *CustomizationUseCase) submit(ctx context.Context, s *session, fields model.OrderFields, key string) (*model.Order, error) {
	if key != "" {
		locked, err := u.idem.TryLock(ctx, s.owner, key)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, domainErrors.ErrDuplicateSubmit
		}
	}

	var (
		order *model.Order
		err   error
	)
	if s.orderID != "" {
		order, err = u.orders.Update(ctx, s.orderID, fields)
	} else {
		order, err = u.orders.Create(ctx, fields)
	}
	if err != nil {
		u.logger.Error("submit order failed",
			slog.String("owner", s.owner),
			slog.String("session", s.id),
			slog.String("order_id", s.orderID),
			slog.String("error", err.Error()),
		)
		if key != "" {
			_ = u.idem.Unlock(ctx, s.owner, key)
		}
		return nil, err
	}

	if key != "" {
		u.remember(ctx, s.owner, key, order)
	}
	return order, nil
}

// recall returns the order stored for a key that already completed a submit.
func (u *CustomizationUseCase) recall(ctx context.Context, owner, key string) (*model.Order, bool) {
	raw, ok, err := u.idem.Recall(ctx, owner, key)
	if err != nil {
		u.logger.Warn("recall idempotency key failed", slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var order model.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil, false
	}
	return &order, true
}

func (u *CustomizationUseCase) remember(ctx context.Context, owner, key string, order *model.Order) {
	raw, err := json.Marshal(order)
	if err == nil {
		err = u.idem.Remember(ctx, owner, key, string(raw))
	}
	if err != nil {
		u.logger.Warn("remember idempotency key failed", slog.String("error", err.Error()))
	}
}
