package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

func TestCreateAdjustmentRequest_Validate(t *testing.T) {
	valid := func() CreateAdjustmentRequest {
		return CreateAdjustmentRequest{
			Kind:       AdjustmentBonus,
			EmployeeID: "emp-1",
			Year:       1403,
			Month:      1,
			Amount:     decimal.RequireFromString("1500"),
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *CreateAdjustmentRequest)
		wantErr string
	}{
		{name: "positive bonus", mutate: func(r *CreateAdjustmentRequest) {}},
		{name: "corrective negative bonus", mutate: func(r *CreateAdjustmentRequest) {
			r.Amount = decimal.RequireFromString("-250.50")
		}},
		{name: "corrective negative prepaid", mutate: func(r *CreateAdjustmentRequest) {
			r.Kind = AdjustmentPrepaid
			r.Amount = decimal.RequireFromString("-100")
		}},
		{name: "three decimal places", mutate: func(r *CreateAdjustmentRequest) {
			r.Amount = decimal.RequireFromString("-1.005")
		}, wantErr: "amount"},
		{name: "unknown kind", mutate: func(r *CreateAdjustmentRequest) {
			r.Kind = "penalty"
		}, wantErr: "kind"},
		{name: "bad period", mutate: func(r *CreateAdjustmentRequest) {
			r.Month = 13
		}, wantErr: "period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.wantErr)
		})
	}
}

func TestUpdateAdjustmentRequest_ValidateAcceptsNegativeAmount(t *testing.T) {
	amount := decimal.RequireFromString("-75")
	req := UpdateAdjustmentRequest{ID: "adj-1", Kind: AdjustmentBonus, Amount: &amount}

	assert.NoError(t, req.Validate())
}
