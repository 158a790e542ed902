package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/pkg/auth"
	"github.com/polkiloo/drinkshop/internal/server/http/dto"
	"github.com/polkiloo/drinkshop/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/drinkshop/internal/test"
	"github.com/polkiloo/drinkshop/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, pattern, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signedIn(c *gin.Context) {
	c.Set(middleware.IdentityContextKey, &auth.Identity{Subject: "uid-1", Name: "amy", TokenID: "jti-1"})
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return v
}

func TestCurrentIdentity(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if CurrentIdentity(c) != nil || CurrentOwner(c) != "" {
		t.Fatal("expected no identity when not set")
	}

	subject := testhelpers.RandomOwner()
	c.Set(middleware.IdentityContextKey, &auth.Identity{Subject: subject, Name: "Joanna"})
	if got := CurrentOwner(c); got != subject {
		t.Fatalf("expected owner %q, got %q", subject, got)
	}

	c.Set(middleware.IdentityContextKey, &auth.Identity{Subject: "uid-2", Name: "Joanna"})
	if got := CurrentOwner(c); got != "uid-2" {
		t.Fatalf("expected display name to be ignored, got %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		domainErrors.ErrMissingOptions:  http.StatusUnprocessableEntity,
		domainErrors.ErrInvalidQuantity: http.StatusUnprocessableEntity,
		domainErrors.ErrInvalidPrice:    http.StatusUnprocessableEntity,
		domainErrors.ErrInvalidOption:   http.StatusBadRequest,
		domainErrors.ErrNotFound:        http.StatusNotFound,
		domainErrors.ErrDuplicateSubmit: http.StatusConflict,
		domainErrors.ErrSessionClosed:   http.StatusConflict,
		domainErrors.ErrUnauthenticated: http.StatusUnauthorized,
		domainErrors.ErrBackendFailure:  http.StatusBadGateway,
		fmt.Errorf("boom"):              http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := statusFor(fmt.Errorf("wrapped: %w", err)); got != want {
			t.Errorf("%v: expected %d, got %d", err, want, got)
		}
	}
}

func TestMenuHandlerList(t *testing.T) {
	var requested model.Category
	h := NewMenuHandler(menuFacadeStub{MenuFn: func(_ context.Context, category model.Category) ([]model.Drink, error) {
		requested = category
		return []model.Drink{{ID: "d1", Name: "青茶", Category: category, MediumPrice: 30, LargePrice: 35}}, nil
	}})

	w := performRequest(t, http.MethodGet, "/api/menu", "/api/menu", h.List, nil, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if requested != model.CategorySeasonal {
		t.Fatalf("expected default category, got %q", requested)
	}
	resp := decode[dto.MenuResponse](t, w)
	if resp.Category != "seasonal" || len(resp.Drinks) != 1 || resp.Drinks[0].LargePrice != 35 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	w = performRequest(t, http.MethodGet, "/api/menu", "/api/menu?category=classic", h.List, nil, nil, nil)
	if w.Code != http.StatusOK || requested != model.CategoryClassic {
		t.Fatalf("expected classic request, got %d %q", w.Code, requested)
	}
}

func TestMenuHandlerListUnknownCategory(t *testing.T) {
	h := NewMenuHandler(menuFacadeStub{MenuFn: func(context.Context, model.Category) ([]model.Drink, error) {
		return nil, domainErrors.ErrNotFound
	}})

	w := performRequest(t, http.MethodGet, "/api/menu", "/api/menu?category=nope", h.List, nil, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestMenuHandlerBackendFailure(t *testing.T) {
	h := NewMenuHandler(menuFacadeStub{CategoriesFn: func(context.Context) ([]model.Category, error) {
		return nil, domainErrors.ErrBackendFailure
	}})

	w := performRequest(t, http.MethodGet, "/api/menu/categories", "/api/menu/categories", h.Categories, nil, nil, nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestMenuHandlerDrinkAndOptions(t *testing.T) {
	h := NewMenuHandler(menuFacadeStub{})

	w := performRequest(t, http.MethodGet, "/api/menu/drinks/:id", "/api/menu/drinks/d9", h.Drink, nil, nil, nil)
	if w.Code != http.StatusOK || decode[dto.DrinkResponse](t, w).ID != "d9" {
		t.Fatalf("unexpected drink response: %d %s", w.Code, w.Body.String())
	}

	w = performRequest(t, http.MethodGet, "/api/menu/options", "/api/menu/options", h.Options, nil, nil, nil)
	opts := decode[dto.OptionsResponse](t, w)
	if len(opts.Sizes) != 2 || len(opts.Temperatures) != 8 || len(opts.Sugars) != 7 || len(opts.AddOns) != 3 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.AddOnSurcharge != model.AddOnSurcharge {
		t.Fatalf("unexpected surcharge %d", opts.AddOnSurcharge)
	}
}

func TestSessionHandlerCurrent(t *testing.T) {
	h := NewSessionHandler(sessionFacadeStub{})

	w := performRequest(t, http.MethodGet, "/api/user/session", "/api/user/session", h.Current, nil, nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", w.Code)
	}

	w = performRequest(t, http.MethodGet, "/api/user/session", "/api/user/session", h.Current, signedIn, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decode[dto.SessionResponse](t, w); resp.Owner != "uid-1" || resp.Subject != "uid-1" || resp.Name != "amy" {
		t.Fatalf("unexpected session: %+v", resp)
	}
}

func TestSessionHandlerSignOut(t *testing.T) {
	var revoked string
	h := NewSessionHandler(sessionFacadeStub{SignOutFn: func(_ context.Context, identity *auth.Identity) error {
		revoked = identity.TokenID
		return nil
	}})

	w := performRequest(t, http.MethodPost, "/api/user/session/signout", "/api/user/session/signout", h.SignOut, signedIn, nil, nil)
	if w.Code != http.StatusNoContent || revoked != "jti-1" {
		t.Fatalf("expected 204 and revoked token, got %d %q", w.Code, revoked)
	}

	h = NewSessionHandler(sessionFacadeStub{SignOutFn: func(context.Context, *auth.Identity) error {
		return fmt.Errorf("revocation store down")
	}})
	w = performRequest(t, http.MethodPost, "/api/user/session/signout", "/api/user/session/signout", h.SignOut, signedIn, nil, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestCustomizationHandlerOpen(t *testing.T) {
	var opened, edited string
	h := NewCustomizationHandler(customizationFacadeStub{
		OpenFn: func(_ context.Context, owner, drinkID string) (usecase.SessionView, error) {
			opened = owner + "/" + drinkID
			return usecase.SessionView{ID: "s1", Drink: model.Drink{ID: drinkID}, NumberOfCups: 1, Missing: model.RequiredCategories}, nil
		},
		EditFn: func(_ context.Context, owner, orderID string) (usecase.SessionView, error) {
			edited = owner + "/" + orderID
			return usecase.SessionView{ID: "s2", OrderID: orderID}, nil
		},
	})

	w := performRequest(t, http.MethodPost, "/c", "/c", h.Open, signedIn, []byte(`{"drinkId":"d1"}`), nil)
	if w.Code != http.StatusCreated || opened != "uid-1/d1" {
		t.Fatalf("expected 201 for new customization, got %d %q", w.Code, opened)
	}
	resp := decode[dto.CustomizationResponse](t, w)
	if resp.EditMode || len(resp.Missing) != 3 || resp.State != "empty" {
		t.Fatalf("unexpected customization: %+v", resp)
	}

	w = performRequest(t, http.MethodPost, "/c", "/c", h.Open, signedIn, []byte(`{"orderId":"rec1"}`), nil)
	if w.Code != http.StatusCreated || edited != "uid-1/rec1" {
		t.Fatalf("expected 201 for edit, got %d %q", w.Code, edited)
	}
	if !decode[dto.CustomizationResponse](t, w).EditMode {
		t.Fatal("expected edit mode")
	}

	for _, body := range []string{`{}`, `{"drinkId":"d1","orderId":"rec1"}`, `not json`} {
		w = performRequest(t, http.MethodPost, "/c", "/c", h.Open, signedIn, []byte(body), nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestCustomizationHandlerSelectOption(t *testing.T) {
	h := NewCustomizationHandler(customizationFacadeStub{
		SelectFn: func(owner, id, category, choice string) (usecase.SessionView, error) {
			if choice == "特大杯" {
				return usecase.SessionView{}, fmt.Errorf("%w: %s", domainErrors.ErrInvalidOption, choice)
			}
			return usecase.SessionView{ID: id, Size: model.Size(choice), Total: 50, Summary: choice}, nil
		},
	})

	w := performRequest(t, http.MethodPut, "/c/:id/options", "/c/s1/options", h.SelectOption, signedIn,
		[]byte(`{"category":"size","choice":"大杯"}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decode[dto.CustomizationResponse](t, w); resp.Size != "大杯" || resp.Total != 50 {
		t.Fatalf("unexpected customization: %+v", resp)
	}

	w = performRequest(t, http.MethodPut, "/c/:id/options", "/c/s1/options", h.SelectOption, signedIn,
		[]byte(`{"category":"size","choice":"特大杯"}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = performRequest(t, http.MethodPut, "/c/:id/options", "/c/s1/options", h.SelectOption, signedIn,
		[]byte(`{"category":"size"}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing choice, got %d", w.Code)
	}
}

func TestCustomizationHandlerToggleAddOn(t *testing.T) {
	h := NewCustomizationHandler(customizationFacadeStub{
		ToggleFn: func(owner, id, name string) (usecase.SessionView, error) {
			return usecase.SessionView{ID: id, AddOns: []model.AddOn{model.AddOn(name)}}, nil
		},
	})

	w := performRequest(t, http.MethodPost, "/c/:id/addons", "/c/s1/addons", h.ToggleAddOn, signedIn,
		[]byte(`{"name":"加水玉"}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decode[dto.CustomizationResponse](t, w); len(resp.AddOns) != 1 || resp.AddOns[0] != "加水玉" {
		t.Fatalf("unexpected add-ons: %+v", resp.AddOns)
	}
}

func TestCustomizationHandlerGetNotFound(t *testing.T) {
	h := NewCustomizationHandler(customizationFacadeStub{
		GetFn: func(string, string) (usecase.SessionView, error) {
			return usecase.SessionView{}, domainErrors.ErrNotFound
		},
	})

	w := performRequest(t, http.MethodGet, "/c/:id", "/c/zzz", h.Get, signedIn, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCustomizationHandlerSubmitMissingOptions(t *testing.T) {
	h := NewCustomizationHandler(customizationFacadeStub{
		SubmitFn: func(context.Context, string, string, string) (*model.Order, error) {
			return nil, &domainErrors.MissingOptionsError{Categories: []string{"temperature"}}
		},
	})

	w := performRequest(t, http.MethodPost, "/c/:id/submit", "/c/s1/submit", h.Submit, signedIn, nil, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	resp := decode[dto.MissingOptionsResponse](t, w)
	if len(resp.Missing) != 1 || resp.Missing[0] != "temperature" || resp.Prompts[0] != "請選擇冰塊" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestCustomizationHandlerSubmit(t *testing.T) {
	var gotKey, gotOwner string
	h := NewCustomizationHandler(customizationFacadeStub{
		SubmitFn: func(_ context.Context, owner, id, key string) (*model.Order, error) {
			gotOwner, gotKey = owner, key
			return &model.Order{ID: "recNew", DrinkName: "青茶", Size: model.SizeLarge, Price: 50, NumberOfCups: 1}, nil
		},
	})

	key := testhelpers.RandomIdempotencyKey()
	w := performRequest(t, http.MethodPost, "/c/:id/submit", "/c/s1/submit", h.Submit, signedIn, nil,
		map[string]string{IdempotencyKeyHeader: " " + key + " "})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotKey != key || gotOwner != "uid-1" {
		t.Fatalf("unexpected submit args: %q %q", gotOwner, gotKey)
	}
	if resp := decode[dto.OrderResponse](t, w); resp.ID != "recNew" || resp.Price != 50 {
		t.Fatalf("unexpected order: %+v", resp)
	}
}

func TestCustomizationHandlerSubmitConflicts(t *testing.T) {
	for _, err := range []error{domainErrors.ErrDuplicateSubmit, domainErrors.ErrSessionClosed} {
		h := NewCustomizationHandler(customizationFacadeStub{
			SubmitFn: func(context.Context, string, string, string) (*model.Order, error) { return nil, err },
		})
		w := performRequest(t, http.MethodPost, "/c/:id/submit", "/c/s1/submit", h.Submit, signedIn, nil, nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("%v: expected 409, got %d", err, w.Code)
		}
	}
}

func TestCustomizationHandlerCancel(t *testing.T) {
	var cancelled string
	h := NewCustomizationHandler(customizationFacadeStub{
		CancelFn: func(owner, id string) error {
			cancelled = id
			return nil
		},
	})

	w := performRequest(t, http.MethodDelete, "/c/:id", "/c/s1", h.Cancel, signedIn, nil, nil)
	if w.Code != http.StatusNoContent || cancelled != "s1" {
		t.Fatalf("expected 204, got %d %q", w.Code, cancelled)
	}
}

func TestOrderHandlerList(t *testing.T) {
	h := NewOrderHandler(orderFacadeStub{OrdersFn: func(_ context.Context, owner string) (usecase.BoardView, error) {
		orders := []model.Order{
			{ID: "rec1", Price: 30, NumberOfCups: 1, OrderName: owner},
			{ID: "rec2", Price: 60, NumberOfCups: 2, OrderName: owner},
		}
		summary := model.Summarize(orders)
		return usecase.BoardView{Orders: orders, Summary: summary, Badge: summary.Badge(), Loaded: true}, nil
	}})

	w := performRequest(t, http.MethodGet, "/o", "/o", h.List, signedIn, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[dto.OrderListResponse](t, w)
	if len(resp.Orders) != 2 || resp.TotalPrice != 90 || resp.NumberOfCups != 3 || resp.Badge != "3" {
		t.Fatalf("unexpected list: %+v", resp)
	}
}

func TestOrderHandlerListEmpty(t *testing.T) {
	h := NewOrderHandler(orderFacadeStub{})

	w := performRequest(t, http.MethodGet, "/o", "/o", h.List, signedIn, nil, nil)
	resp := decode[dto.OrderListResponse](t, w)
	if resp.Orders == nil || len(resp.Orders) != 0 || resp.Badge != "" {
		t.Fatalf("expected empty list, got %+v", resp)
	}
}

func TestOrderHandlerChangeQuantity(t *testing.T) {
	var gotPrice *int
	h := NewOrderHandler(orderFacadeStub{ChangeFn: func(_ context.Context, owner, id string, cups int, price *int) (*model.Order, error) {
		gotPrice = price
		if cups < 1 {
			return nil, domainErrors.ErrInvalidQuantity
		}
		return &model.Order{ID: id, NumberOfCups: cups, Price: *price}, nil
	}})

	w := performRequest(t, http.MethodPatch, "/o/:id", "/o/rec1", h.ChangeQuantity, signedIn,
		[]byte(`{"numberOfCups":3,"price":150}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotPrice == nil || *gotPrice != 150 {
		t.Fatalf("unexpected price forwarded: %v", gotPrice)
	}
	if resp := decode[dto.OrderResponse](t, w); resp.NumberOfCups != 3 || resp.Price != 150 {
		t.Fatalf("unexpected order: %+v", resp)
	}

	w = performRequest(t, http.MethodPatch, "/o/:id", "/o/rec1", h.ChangeQuantity, signedIn,
		[]byte(`{"numberOfCups":0}`), nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestOrderHandlerDelete(t *testing.T) {
	h := NewOrderHandler(orderFacadeStub{DeleteFn: func(_ context.Context, owner, id string) error {
		if id != "rec1" {
			return domainErrors.ErrNotFound
		}
		return nil
	}})

	w := performRequest(t, http.MethodDelete, "/o/:id", "/o/rec1", h.Delete, signedIn, nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = performRequest(t, http.MethodDelete, "/o/:id", "/o/rec9", h.Delete, signedIn, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestOrderHandlerHistory(t *testing.T) {
	h := NewOrderHandler(orderFacadeStub{})
	w := performRequest(t, http.MethodGet, "/o/history", "/o/history", h.History, signedIn, nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for empty history, got %d", w.Code)
	}

	id := uuid.New()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	h = NewOrderHandler(orderFacadeStub{HistoryFn: func(context.Context, string) ([]model.OrderEvent, error) {
		return []model.OrderEvent{{ID: id, Kind: model.OrderCreated, OrderID: "rec1", Owner: "amy", OccurredAt: at}}, nil
	}})
	w = performRequest(t, http.MethodGet, "/o/history", "/o/history", h.History, signedIn, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[[]dto.OrderEventResponse](t, w)
	if len(resp) != 1 || resp[0].ID != id.String() || resp[0].Kind != "created" || !resp[0].OccurredAt.Equal(at) {
		t.Fatalf("unexpected history: %+v", resp)
	}
}
