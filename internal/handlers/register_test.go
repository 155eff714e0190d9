package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.MustParse("3f0c7d1e-5b8a-4d0e-9a43-2f1d8c6b7a10")
	phone := "+1 555 0100"
	stored := &models.Account{
		UserID:    id,
		Username:  "alice_01",
		Email:     "alicesmith@gmail.com",
		Fullname:  "Alice Smith",
		Phone:     &phone,
		CreatedAt: time.Now(),
	}

	normalized := models.RegisterRequest{
		Username: "alice_01",
		Email:    "alicesmith@gmail.com",
		Password: "secret1",
		Fullname: "Alice Smith",
		Phone:    &phone,
	}

	validBody := `{"username":" alice_01 ","email":"Alice.Smith+news@GMail.com","password":"secret1","fullname":"Alice Smith ","phone":"+1 555 0100"}`

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			body: validBody,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), normalized).
					Return(stored, nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: `{"success":true,"message":"User registered successfully","data":{` +
				`"user_id":"3f0c7d1e-5b8a-4d0e-9a43-2f1d8c6b7a10","username":"alice_01",` +
				`"email":"alicesmith@gmail.com","fullname":"Alice Smith"}}`,
		},
		{
			name:         "validation errors for every failing field",
			body:         `{"username":"al","email":"not-an-email","password":"secret1","fullname":"Alice Smith"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"errors":[` +
				`{"field":"username","message":"Username must be between 3 and 50 characters"},` +
				`{"field":"email","message":"Please provide a valid email address"}]}`,
		},
		{
			name: "email already registered",
			body: validBody,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), normalized).Return(nil, services.ErrEmailAlreadyRegistered)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"message":"Email already registered"}`,
		},
		{
			name: "username taken",
			body: validBody,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), normalized).Return(nil, services.ErrUsernameTaken)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"message":"Username already taken"}`,
		},
		{
			name: "internal server error",
			body: validBody,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), normalized).Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"message":"Server error during registration"}`,
		},
		{
			name:         "null phone",
			body:         `{"username":"alice_01","email":"a@example.com","password":"secret1","fullname":"Alice Smith","phone":null}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"errors":[{"field":"phone","message":"Please provide a valid phone number"}]}`,
		},
		{
			name:         "non-string phone",
			body:         `{"username":"alice_01","email":"a@example.com","password":"secret1","fullname":"Alice Smith","phone":5550100}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"message":"Invalid request body"}`,
		},
		{
			name:         "invalid json",
			body:         "{invalid json}",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"message":"Invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			assert.NotContains(t, rr.Body.String(), "password")
		})
	}
}
