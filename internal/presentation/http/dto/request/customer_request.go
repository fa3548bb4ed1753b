package request

import (
	"github.com/sangkips/milk-ledger/internal/application/service"
	"github.com/sangkips/milk-ledger/internal/domain/entity"
)

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	Phone     string  `json:"phone" binding:"required,max=32"`
	MilkPrice float64 `json:"milk_price" binding:"min=0"`
}

func (r CreateCustomerRequest) ToInput() *service.CreateCustomerInput {
	return &service.CreateCustomerInput{
		Name:      r.Name,
		Phone:     r.Phone,
		MilkPrice: r.MilkPrice,
	}
}

// UpdateCustomerRequest represents a partial customer update. Omitted
// fields keep their stored value.
type UpdateCustomerRequest struct {
	Name      *string  `json:"name" binding:"omitempty,max=255"`
	Phone     *string  `json:"phone" binding:"omitempty,max=32"`
	MilkPrice *float64 `json:"milk_price" binding:"omitempty,min=0"`
}

func (r UpdateCustomerRequest) ToPatch() entity.CustomerPatch {
	return entity.CustomerPatch{
		Name:      r.Name,
		Phone:     r.Phone,
		MilkPrice: r.MilkPrice,
	}
}

// CustomerURI binds the :id path parameter
type CustomerURI struct {
	ID string `uri:"id" binding:"required"`
}

// LookupQuery represents the customer lookup parameters
type LookupQuery struct {
	Phone string `form:"phone" binding:"required"`
}
