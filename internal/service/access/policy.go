// Package access решает, может ли пользователь выполнить операцию над бронированием.
// Все ролевые проверки сервиса проходят через таблицу policy.
package access

import (
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

// Operation действие над бронированием
type Operation string

const (
	OpView    Operation = "view"
	OpCreate  Operation = "create"
	OpAdvance Operation = "advance" // PENDING -> CONFIRMED -> IN_PROGRESS -> COMPLETED
	OpCancel  Operation = "cancel"
)

// Relation отношение пользователя к бронированию
type Relation string

const (
	RelNone     Relation = "none"
	RelCustomer Relation = "customer"
	RelProvider Relation = "provider"
)

// Decision результат проверки
type Decision struct {
	Allowed bool
	Reason  string
}

type key struct {
	op       Operation
	role     domain.Role
	relation Relation
}

// policy содержит только разрешающие правила, все остальное запрещено.
// Для ADMIN отношение не важно, правила заведены на каждое отношение.
var policy = map[key]bool{
	{OpView, domain.RoleCustomer, RelCustomer}: true,
	{OpView, domain.RoleProvider, RelProvider}: true,
	{OpView, domain.RoleAdmin, RelNone}:        true,
	{OpView, domain.RoleAdmin, RelCustomer}:    true,
	{OpView, domain.RoleAdmin, RelProvider}:    true,

	{OpCreate, domain.RoleCustomer, RelNone}: true,

	{OpAdvance, domain.RoleProvider, RelProvider}: true,
	{OpAdvance, domain.RoleAdmin, RelNone}:        true,
	{OpAdvance, domain.RoleAdmin, RelCustomer}:    true,
	{OpAdvance, domain.RoleAdmin, RelProvider}:    true,

	{OpCancel, domain.RoleCustomer, RelCustomer}: true,
	{OpCancel, domain.RoleProvider, RelProvider}: true,
	{OpCancel, domain.RoleAdmin, RelNone}:        true,
	{OpCancel, domain.RoleAdmin, RelCustomer}:    true,
	{OpCancel, domain.RoleAdmin, RelProvider}:    true,
}

// RelationOf определяет отношение пользователя к бронированию с учетом его роли.
// booking может быть nil (операция создания).
func RelationOf(actor *domain.User, booking *domain.Booking) Relation {
	if actor == nil || booking == nil {
		return RelNone
	}
	switch actor.Role {
	case domain.RoleCustomer:
		if booking.CustomerID == actor.ID {
			return RelCustomer
		}
	case domain.RoleProvider:
		if booking.ProviderID == actor.ID {
			return RelProvider
		}
	case domain.RoleAdmin:
		switch actor.ID {
		case booking.CustomerID:
			return RelCustomer
		case booking.ProviderID:
			return RelProvider
		}
	}
	return RelNone
}

// Decide возвращает решение для операции op над booking
func Decide(op Operation, actor *domain.User, booking *domain.Booking) Decision {
	if actor == nil {
		return Decision{Allowed: false, Reason: "anonymous user"}
	}

	rel := RelationOf(actor, booking)
	if policy[key{op: op, role: actor.Role, relation: rel}] {
		return Decision{Allowed: true}
	}

	return Decision{
		Allowed: false,
		Reason:  fmt.Sprintf("role %s with relation %s may not %s booking", actor.Role, rel, op),
	}
}

// Check возвращает domain.ErrUnauthorized, если операция запрещена
func Check(op Operation, actor *domain.User, booking *domain.Booking) error {
	d := Decide(op, actor, booking)
	if !d.Allowed {
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, d.Reason)
	}
	return nil
}

// OperationFor возвращает операцию, которую означает переход в статус target
func OperationFor(target domain.BookingStatus) Operation {
	if target == domain.StatusCancelled {
		return OpCancel
	}
	return OpAdvance
}
