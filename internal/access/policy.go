// Package access decides which actor may perform which operation on which resource.
package access

import (
	"github.com/lshigami/Lectern/internal/apperror"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Actor is the identity the boundary layer resolved for a call.
// The zero value is the anonymous actor.
type Actor struct {
	ID   uint
	Role Role
}

var Anonymous = Actor{}

func (a Actor) Authenticated() bool {
	return a.ID != 0 && a.Role.Valid()
}

type Resource string

const (
	ResourceCourse  Resource = "course"
	ResourceLesson  Resource = "lesson"
	ResourceSection Resource = "section"
	// ResourceTest covers the whole test aggregate, questions and answers included.
	ResourceTest   Resource = "test"
	ResourceResult Resource = "result"
)

type Operation string

const (
	OpRead  Operation = "read"
	OpWrite Operation = "write"
)

// Policy is a pure decision function injected into every service.
type Policy func(actor Actor, resource Resource, op Operation) bool

// DefaultPolicy: reads are open to everyone. Course and test curation needs a teacher
// or admin; lessons, sections and result submission only need an authenticated actor.
func DefaultPolicy(actor Actor, resource Resource, op Operation) bool {
	if op == OpRead {
		return true
	}
	switch resource {
	case ResourceCourse, ResourceTest:
		return actor.Authenticated() && (actor.Role == RoleTeacher || actor.Role == RoleAdmin)
	case ResourceLesson, ResourceSection, ResourceResult:
		return actor.Authenticated()
	}
	return false
}

func NewPolicy() Policy {
	return DefaultPolicy
}

func CanWrite(p Policy, actor Actor, resource Resource) bool {
	return p(actor, resource, OpWrite)
}

// Authorize returns a Forbidden error when p denies the operation.
func Authorize(p Policy, actor Actor, resource Resource, op Operation) error {
	if p(actor, resource, op) {
		return nil
	}
	if !actor.Authenticated() {
		return apperror.Forbidden("%s %s requires an authenticated actor", op, resource)
	}
	return apperror.Forbidden("role %q may not %s %s", actor.Role, op, resource)
}
