package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseStatusToken(t *testing.T) {
	valid := map[string]OrderStatus{
		"0":     StatusPending,
		"1":     StatusCompleted,
		"true":  StatusCompleted,
		"TRUE":  StatusCompleted,
		"True":  StatusCompleted,
		"false": StatusPending,
		"FaLsE": StatusPending,
	}
	for token, want := range valid {
		got, err := ParseStatusToken(token)
		if err != nil {
			t.Errorf("ParseStatusToken(%q) unexpected error: %v", token, err)
			continue
		}
		if got != want {
			t.Errorf("ParseStatusToken(%q) = %v, want %v", token, got, want)
		}
	}

	for _, token := range []string{"yes", "no", "2", "", " 1", "delivered"} {
		if _, err := ParseStatusToken(token); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseStatusToken(%q) expected validation error, got %v", token, err)
		}
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	if !StatusPending.CanTransitionTo(StatusCompleted) {
		t.Error("pending -> completed must be allowed")
	}
	if !StatusCompleted.CanTransitionTo(StatusPending) {
		t.Error("completed -> pending must be allowed")
	}
	if !StatusPending.CanTransitionTo(StatusPending) {
		t.Error("rewriting the same status must be allowed")
	}
	if StatusPending.CanTransitionTo(OrderStatus(7)) {
		t.Error("unknown target status must be rejected")
	}
}

func TestNewOrderLines_FreezesCartPrices(t *testing.T) {
	cart := []*CartLine{
		{MenuItemID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		{MenuItemID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
	}

	lines := NewOrderLines(99, cart)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !lines[0].LineTotal.Equal(decimal.NewFromInt(20)) {
		t.Errorf("line total = %s, want 20", lines[0].LineTotal)
	}
	if lines[1].OrderID != 99 {
		t.Errorf("order id not propagated")
	}

	cart[0].UnitPrice = decimal.NewFromInt(99)
	if !lines[0].UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Error("order line must not follow later cart price changes")
	}

	if total := CartTotal(cart[1:]); !total.Equal(decimal.NewFromInt(5)) {
		t.Errorf("cart total = %s, want 5", total)
	}
}

func TestResolveRole_Precedence(t *testing.T) {
	cases := []struct {
		groups []string
		want   Role
	}{
		{nil, RoleCustomer},
		{[]string{"Kitchen"}, RoleCustomer},
		{[]string{GroupDeliveryCrew}, RoleDeliveryCrew},
		{[]string{GroupManager}, RoleManager},
		{[]string{GroupDeliveryCrew, GroupManager}, RoleManager},
		{[]string{GroupManager, GroupDeliveryCrew}, RoleManager},
	}
	for _, tc := range cases {
		if got := ResolveRole(tc.groups); got != tc.want {
			t.Errorf("ResolveRole(%v) = %v, want %v", tc.groups, got, tc.want)
		}
	}
}
