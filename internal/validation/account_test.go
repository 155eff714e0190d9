package validation

import (
	"strings"
	"testing"

	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Username: "alice_01",
		Email:    "A@Example.com",
		Password: "secret1",
		Fullname: "Alice A",
	}
}

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	var errs Errors
	require.ErrorAs(t, err, &errs)
	return errs
}

func TestRegistration_Valid(t *testing.T) {
	req := validRegistration()
	req.Username = "  alice_01 "
	req.Fullname = " Alice A  "
	req.Phone = strPtr(" +1 (555) 010-0000 ")

	got, err := Registration(req)
	require.NoError(t, err)

	assert.Equal(t, "alice_01", got.Username)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, "secret1", got.Password)
	assert.Equal(t, "Alice A", got.Fullname)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "+1 (555) 010-0000", *got.Phone)

	// the caller's phone is not rewritten
	assert.Equal(t, " +1 (555) 010-0000 ", *req.Phone)
}

func TestRegistration_Username(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantKind Kind
		wantMsg  string
	}{
		{name: "min length", username: "abc"},
		{name: "max length", username: strings.Repeat("a", 50)},
		{name: "mixed charset", username: "Al_ice_9"},
		{name: "too short", username: "ab", wantKind: KindLength, wantMsg: msgUsernameLength},
		{name: "too short after trim", username: "  ab  ", wantKind: KindLength, wantMsg: msgUsernameLength},
		{name: "too long", username: strings.Repeat("a", 51), wantKind: KindLength, wantMsg: msgUsernameLength},
		{name: "empty", username: "", wantKind: KindLength, wantMsg: msgUsernameLength},
		{name: "hyphen", username: "alice-01", wantKind: KindFormat, wantMsg: msgUsernameFormat},
		{name: "inner space", username: "ali ce", wantKind: KindFormat, wantMsg: msgUsernameFormat},
		{name: "non ascii letter", username: "alicé", wantKind: KindFormat, wantMsg: msgUsernameFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			req.Username = tt.username

			_, err := Registration(req)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}

			errs := fieldErrors(t, err)
			require.Len(t, errs, 1)
			assert.Equal(t, FieldError{Field: "username", Message: tt.wantMsg, Kind: tt.wantKind}, errs[0])
		})
	}
}

func TestRegistration_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantKind Kind
		wantMsg  string
	}{
		{name: "six chars with digit", password: "secret1"},
		{name: "digits only", password: "123456"},
		{name: "no digit", password: "abcdef", wantKind: KindFormat, wantMsg: msgPasswordDigit},
		{name: "too short", password: "a1", wantKind: KindLength, wantMsg: msgPasswordLength},
		{name: "empty", password: "", wantKind: KindLength, wantMsg: msgPasswordLength},
		{name: "spaces are not trimmed", password: "  1   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			req.Password = tt.password

			got, err := Registration(req)
			if tt.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.password, got.Password)
				return
			}

			errs := fieldErrors(t, err)
			require.Len(t, errs, 1)
			assert.Equal(t, FieldError{Field: "password", Message: tt.wantMsg, Kind: tt.wantKind}, errs[0])
		})
	}
}

func TestRegistration_Phone(t *testing.T) {
	tests := []struct {
		name    string
		phone   *string
		null    bool
		wantErr bool
	}{
		{name: "absent", phone: nil},
		{name: "digits", phone: strPtr("5550100")},
		{name: "formatted", phone: strPtr("+44 (20) 7946-0958")},
		{name: "letters", phone: strPtr("call me"), wantErr: true},
		{name: "blank", phone: strPtr("   "), wantErr: true},
		{name: "empty", phone: strPtr(""), wantErr: true},
		{name: "null", null: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			req.Phone = tt.phone
			req.PhoneNull = tt.null

			got, err := Registration(req)
			if !tt.wantErr {
				require.NoError(t, err)
				if tt.phone == nil {
					assert.Nil(t, got.Phone)
				}
				return
			}

			errs := fieldErrors(t, err)
			require.Len(t, errs, 1)
			assert.Equal(t, FieldError{Field: "phone", Message: msgPhoneFormat, Kind: KindFormat}, errs[0])
		})
	}
}

func TestRegistration_CollectsAllFields(t *testing.T) {
	req := models.RegisterRequest{
		Username: "a!",
		Email:    "not-an-email",
		Password: "abc",
		Fullname: "A",
		Phone:    strPtr("abc"),
	}

	got, err := Registration(req)
	errs := fieldErrors(t, err)

	assert.Equal(t, Errors{
		{Field: "username", Message: msgUsernameLength, Kind: KindLength},
		{Field: "email", Message: msgEmailFormat, Kind: KindFormat},
		{Field: "password", Message: msgPasswordLength, Kind: KindLength},
		{Field: "fullname", Message: msgFullnameLength, Kind: KindLength},
		{Field: "phone", Message: msgPhoneFormat, Kind: KindFormat},
	}, errs)

	// failing fields are reported, not normalized
	assert.Equal(t, "not-an-email", got.Email)
}

func TestRegistration_FailedFieldNotNormalized(t *testing.T) {
	req := validRegistration()
	req.Username = "  a  "

	got, err := Registration(req)
	require.Error(t, err)
	assert.Equal(t, "  a  ", got.Username)
	assert.Equal(t, "a@example.com", got.Email)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		req      models.LoginRequest
		want     models.LoginRequest
		wantErrs Errors
	}{
		{
			name: "valid",
			req:  models.LoginRequest{Email: "  Bob@Example.COM ", Password: "x"},
			want: models.LoginRequest{Email: "bob@example.com", Password: "x"},
		},
		{
			name: "missing password",
			req:  models.LoginRequest{Email: "bob@example.com"},
			wantErrs: Errors{
				{Field: "password", Message: msgPasswordRequired, Kind: KindRequired},
			},
		},
		{
			name: "everything missing",
			req:  models.LoginRequest{},
			wantErrs: Errors{
				{Field: "email", Message: msgEmailFormat, Kind: KindFormat},
				{Field: "password", Message: msgPasswordRequired, Kind: KindRequired},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Login(tt.req)
			if tt.wantErrs == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Equal(t, tt.wantErrs, fieldErrors(t, err))
		})
	}
}
