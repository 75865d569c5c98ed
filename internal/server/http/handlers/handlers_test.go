package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/server/http/dto"
	"github.com/marketbase/marketplace/internal/server/http/middleware"
	testhelpers "github.com/marketbase/marketplace/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withSeller(seller *model.Seller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SellerContextKey, seller)
		c.Next()
	}
}

func serve(register func(*gin.Engine), req *http.Request) *httptest.ResponseRecorder {
	engine := gin.New()
	register(engine)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestWithdrawCreate(t *testing.T) {
	handler := NewWithdrawHandler(testhelpers.WithdrawFacadeStub{})
	seller := &model.Seller{ID: "s1", Name: "Ada"}

	w := serve(func(e *gin.Engine) {
		e.POST("/create", withSeller(seller), handler.Create)
	}, jsonRequest(http.MethodPost, "/create", gin.H{"amount": 80}))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp dto.WithdrawResponse
	decodeBody(t, w, &resp)
	if !resp.Success || resp.Withdraw.SellerID != "s1" || resp.Withdraw.Amount != 80 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWithdrawCreateValidation(t *testing.T) {
	handler := NewWithdrawHandler(testhelpers.WithdrawFacadeStub{})
	seller := &model.Seller{ID: "s1"}

	cases := []struct {
		name string
		body any
		want int
	}{
		{"missing amount", gin.H{}, http.StatusBadRequest},
		{"negative amount", gin.H{"amount": -5}, http.StatusBadRequest},
		{"malformed json", "not json", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(func(e *gin.Engine) {
				e.POST("/create", withSeller(seller), handler.Create)
			}, jsonRequest(http.MethodPost, "/create", tc.body))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestWithdrawCreateErrorMapping(t *testing.T) {
	seller := &model.Seller{ID: "s1"}
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"insufficient balance", domainErrors.ErrInsufficientBalance, http.StatusPaymentRequired},
		{"invalid amount", domainErrors.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{"notification failed", domainErrors.ErrNotificationFailed, http.StatusBadGateway},
		{"unknown seller", domainErrors.ErrNotFound, http.StatusNotFound},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewWithdrawHandler(testhelpers.WithdrawFacadeStub{
				CreateFn: func(context.Context, string, float64) (*model.Withdrawal, error) {
					return nil, tc.err
				},
			})
			w := serve(func(e *gin.Engine) {
				e.POST("/create", withSeller(seller), handler.Create)
			}, jsonRequest(http.MethodPost, "/create", gin.H{"amount": 10}))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
			var resp dto.ErrorResponse
			decodeBody(t, w, &resp)
			if resp.Success {
				t.Fatal("error envelope must carry success=false")
			}
		})
	}
}

func TestWithdrawList(t *testing.T) {
	handler := NewWithdrawHandler(testhelpers.WithdrawFacadeStub{
		ListFn: func(context.Context) ([]model.Withdrawal, error) {
			return []model.Withdrawal{
				{ID: "w2", Status: model.WithdrawalStatusPending},
				{ID: "w1", Status: model.WithdrawalStatusSucceeded},
			}, nil
		},
	})

	w := serve(func(e *gin.Engine) {
		e.GET("/list", handler.List)
	}, httptest.NewRequest(http.MethodGet, "/list", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp dto.WithdrawListResponse
	decodeBody(t, w, &resp)
	if len(resp.Withdraws) != 2 || resp.Withdraws[0].ID != "w2" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWithdrawTransactions(t *testing.T) {
	seller := &model.Seller{ID: "s1"}

	t.Run("history for the authenticated seller", func(t *testing.T) {
		var gotSeller string
		handler := NewWithdrawHandler(testhelpers.WithdrawFacadeStub{
			TransactionsFn: func(ctx context.Context, sellerID string) ([]model.TransactionRecord, error) {
				gotSeller = sellerID
				return []model.TransactionRecord{{WithdrawalID: "w1", Amount: 80, Status: model.WithdrawalStatusSucceeded}}, nil
			},
		})
		w := serve(func(e *gin.Engine) {
			e.GET("/transactions", withSeller(seller), handler.Transactions)
		}, httptest.NewRequest(http.MethodGet, "/transactions", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if gotSeller != "s1" {
			t.Fatalf("unexpected seller id: %q", gotSeller)
		}
		var resp dto.TransactionListResponse
		decodeBody(t, w, &resp)
		if len(resp.Transactions) != 1 || resp.Transactions[0].WithdrawalID != "w1" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})
	t.Run("no seller context", func(t *testing.T) {
		handler := NewWithdrawHandler(testhelpers.WithdrawFacadeStub{})
		w := serve(func(e *gin.Engine) {
			e.GET("/transactions", handler.Transactions)
		}, httptest.NewRequest(http.MethodGet, "/transactions", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestWithdrawSettle(t *testing.T) {
	handler := NewWithdrawHandler(testhelpers.WithdrawFacadeStub{})

	w := serve(func(e *gin.Engine) {
		e.PUT("/settle/:id", handler.Settle)
	}, jsonRequest(http.MethodPut, "/settle/w1", gin.H{"sellerId": "s1"}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp dto.WithdrawResponse
	decodeBody(t, w, &resp)
	if resp.Withdraw.Status != string(model.WithdrawalStatusSucceeded) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWithdrawSettlePreconditionStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domainErrors.ErrNotFound, http.StatusNotFound},
		{"seller mismatch", domainErrors.ErrSellerMismatch, http.StatusConflict},
		{"already settled", domainErrors.ErrAlreadySettled, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewWithdrawHandler(testhelpers.WithdrawFacadeStub{
				SettleFn: func(context.Context, string, string) (*model.Withdrawal, error) {
					return nil, tc.err
				},
			})
			w := serve(func(e *gin.Engine) {
				e.PUT("/settle/:id", handler.Settle)
			}, jsonRequest(http.MethodPut, "/settle/w1", gin.H{"sellerId": "s1"}))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestWithdrawSettleMailFailureAfterCommit(t *testing.T) {
	handler := NewWithdrawHandler(testhelpers.WithdrawFacadeStub{
		SettleFn: func(ctx context.Context, id, sellerID string) (*model.Withdrawal, error) {
			w := &model.Withdrawal{ID: id, SellerID: sellerID, Status: model.WithdrawalStatusSucceeded}
			return w, domainErrors.ErrNotificationFailed
		},
	})

	w := serve(func(e *gin.Engine) {
		e.PUT("/settle/:id", handler.Settle)
	}, jsonRequest(http.MethodPut, "/settle/w1", gin.H{"sellerId": "s1"}))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestConversationCreate(t *testing.T) {
	t.Run("new thread", func(t *testing.T) {
		handler := NewConversationHandler(testhelpers.ConversationFacadeStub{})
		w := serve(func(e *gin.Engine) {
			e.POST("/create", handler.Create)
		}, jsonRequest(http.MethodPost, "/create", gin.H{"groupTitle": "u1.s1", "userId": "u1", "sellerId": "s1"}))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})
	t.Run("existing thread", func(t *testing.T) {
		handler := NewConversationHandler(testhelpers.ConversationFacadeStub{
			OpenFn: func(context.Context, string, string, string) (*model.Conversation, bool, error) {
				return &model.Conversation{ID: "c1"}, false, nil
			},
		})
		w := serve(func(e *gin.Engine) {
			e.POST("/create", handler.Create)
		}, jsonRequest(http.MethodPost, "/create", gin.H{"groupTitle": "u1.s1", "userId": "u1", "sellerId": "s1"}))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
	t.Run("missing fields", func(t *testing.T) {
		handler := NewConversationHandler(testhelpers.ConversationFacadeStub{})
		w := serve(func(e *gin.Engine) {
			e.POST("/create", handler.Create)
		}, jsonRequest(http.MethodPost, "/create", gin.H{"groupTitle": "u1.s1"}))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestConversationListAndUpdate(t *testing.T) {
	handler := NewConversationHandler(testhelpers.ConversationFacadeStub{})

	w := serve(func(e *gin.Engine) {
		e.GET("/seller/:id", handler.ListForSeller)
	}, httptest.NewRequest(http.MethodGet, "/seller/s1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var listResp dto.ConversationListResponse
	decodeBody(t, w, &listResp)
	if !listResp.Success || len(listResp.Conversations) != 1 {
		t.Fatalf("unexpected list response: %+v", listResp)
	}

	w = serve(func(e *gin.Engine) {
		e.PUT("/update/:id", handler.UpdateLastMessage)
	}, jsonRequest(http.MethodPut, "/update/c1", gin.H{"lastMessage": "hi", "lastMessageId": "m1"}))
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}
	var resp dto.ConversationResponse
	decodeBody(t, w, &resp)
	if resp.Conversation.LastMessage != "hi" {
		t.Fatalf("unexpected update response: %+v", resp)
	}
}

func TestMessageCreateAndList(t *testing.T) {
	handler := NewMessageHandler(testhelpers.MessageFacadeStub{})

	w := serve(func(e *gin.Engine) {
		e.POST("/create", handler.Create)
	}, jsonRequest(http.MethodPost, "/create", gin.H{"conversationId": "c1", "sender": "u1", "text": "hello"}))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created dto.CreatedMessageResponse
	decodeBody(t, w, &created)
	if created.Message.ConversationID != "c1" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	w = serve(func(e *gin.Engine) {
		e.GET("/messages/:id", handler.List)
	}, httptest.NewRequest(http.MethodGet, "/messages/c1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
}

func TestMessageCreateUploadFailure(t *testing.T) {
	handler := NewMessageHandler(testhelpers.MessageFacadeStub{
		SendFn: func(context.Context, string, string, string, string) (*model.Message, error) {
			return nil, errors.New("store unavailable")
		},
	})

	w := serve(func(e *gin.Engine) {
		e.POST("/create", handler.Create)
	}, jsonRequest(http.MethodPost, "/create", gin.H{"conversationId": "c1", "sender": "u1", "images": "data"}))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestCouponCreate(t *testing.T) {
	seller := &model.Seller{ID: "shop1"}

	t.Run("success", func(t *testing.T) {
		name := testhelpers.RandomASCIIString(6, 12)
		var gotShop, gotName string
		handler := NewCouponHandler(testhelpers.CouponFacadeStub{
			CreateFn: func(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
				gotShop = coupon.ShopID
				gotName = coupon.Name
				created := *coupon
				created.ID = "cp1"
				return &created, nil
			},
		})
		w := serve(func(e *gin.Engine) {
			e.POST("/create", withSeller(seller), handler.Create)
		}, jsonRequest(http.MethodPost, "/create", gin.H{"name": name, "value": 10}))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if gotShop != "shop1" {
			t.Fatalf("coupon must belong to the authenticated shop, got %q", gotShop)
		}
		if gotName != name {
			t.Fatalf("unexpected coupon name: %q", gotName)
		}
	})
	t.Run("duplicate name", func(t *testing.T) {
		handler := NewCouponHandler(testhelpers.CouponFacadeStub{
			CreateFn: func(context.Context, *model.Coupon) (*model.Coupon, error) {
				return nil, domainErrors.ErrAlreadyExists
			},
		})
		w := serve(func(e *gin.Engine) {
			e.POST("/create", withSeller(seller), handler.Create)
		}, jsonRequest(http.MethodPost, "/create", gin.H{"name": "SAVE10", "value": 10}))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
	t.Run("no seller context", func(t *testing.T) {
		handler := NewCouponHandler(testhelpers.CouponFacadeStub{})
		w := serve(func(e *gin.Engine) {
			e.POST("/create", handler.Create)
		}, jsonRequest(http.MethodPost, "/create", gin.H{"name": "SAVE10", "value": 10}))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestCouponListDeleteValue(t *testing.T) {
	seller := &model.Seller{ID: "shop1"}
	handler := NewCouponHandler(testhelpers.CouponFacadeStub{})

	w := serve(func(e *gin.Engine) {
		e.GET("/get-coupon/:id", withSeller(seller), handler.List)
	}, httptest.NewRequest(http.MethodGet, "/get-coupon/shop1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}

	w = serve(func(e *gin.Engine) {
		e.DELETE("/delete-coupon/:id", withSeller(seller), handler.Delete)
	}, httptest.NewRequest(http.MethodDelete, "/delete-coupon/cp1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	missing := NewCouponHandler(testhelpers.CouponFacadeStub{
		DeleteFn: func(context.Context, string) error { return domainErrors.ErrNotFound },
	})
	w = serve(func(e *gin.Engine) {
		e.DELETE("/delete-coupon/:id", withSeller(seller), missing.Delete)
	}, httptest.NewRequest(http.MethodDelete, "/delete-coupon/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete missing: expected 404, got %d", w.Code)
	}

	w = serve(func(e *gin.Engine) {
		e.GET("/get-coupon-value/:name", handler.ValueByName)
	}, httptest.NewRequest(http.MethodGet, "/get-coupon-value/SAVE10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("value: expected 200, got %d", w.Code)
	}
	var resp dto.CouponResponse
	decodeBody(t, w, &resp)
	if resp.CouponCode.Name != "SAVE10" {
		t.Fatalf("unexpected value response: %+v", resp)
	}
}

func TestPaymentProcess(t *testing.T) {
	var gotCurrency string
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{
		IntentFn: func(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error) {
			gotCurrency = currency
			return &model.PaymentIntent{ClientSecret: "pi_1_secret", Amount: amount, Currency: currency}, nil
		},
	})

	w := serve(func(e *gin.Engine) {
		e.POST("/process", handler.Process)
	}, jsonRequest(http.MethodPost, "/process", gin.H{"amount": 1999}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotCurrency != "inr" {
		t.Fatalf("expected default currency inr, got %q", gotCurrency)
	}
	var resp dto.ProcessPaymentResponse
	decodeBody(t, w, &resp)
	if resp.ClientSecret != "pi_1_secret" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPaymentProcessRejectsZeroAmount(t *testing.T) {
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{})
	w := serve(func(e *gin.Engine) {
		e.POST("/process", handler.Process)
	}, jsonRequest(http.MethodPost, "/process", gin.H{"amount": 0}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPaymentAPIKey(t *testing.T) {
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{APIKey: "pk_live"})
	w := serve(func(e *gin.Engine) {
		e.GET("/stripeapikey", handler.APIKey)
	}, httptest.NewRequest(http.MethodGet, "/stripeapikey", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp dto.APIKeyResponse
	decodeBody(t, w, &resp)
	if resp.StripeAPIKey != "pk_live" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
