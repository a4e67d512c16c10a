package access

import (
	"testing"

	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy_Writes(t *testing.T) {
	student := Actor{ID: 1, Role: RoleStudent}
	teacher := Actor{ID: 2, Role: RoleTeacher}
	admin := Actor{ID: 3, Role: RoleAdmin}

	tests := []struct {
		name     string
		actor    Actor
		resource Resource
		want     bool
	}{
		{"anonymous course", Anonymous, ResourceCourse, false},
		{"student course", student, ResourceCourse, false},
		{"teacher course", teacher, ResourceCourse, true},
		{"admin course", admin, ResourceCourse, true},
		{"student test", student, ResourceTest, false},
		{"teacher test", teacher, ResourceTest, true},
		{"anonymous lesson", Anonymous, ResourceLesson, false},
		{"student lesson", student, ResourceLesson, true},
		{"student section", student, ResourceSection, true},
		{"student result", student, ResourceResult, true},
		{"anonymous result", Anonymous, ResourceResult, false},
		{"unknown resource", admin, Resource("billing"), false},
		{"invalid role", Actor{ID: 9, Role: "guest"}, ResourceLesson, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanWrite(DefaultPolicy, tt.actor, tt.resource))
		})
	}
}

func TestDefaultPolicy_ReadsAreOpen(t *testing.T) {
	for _, r := range []Resource{ResourceCourse, ResourceLesson, ResourceSection, ResourceTest, ResourceResult} {
		assert.True(t, DefaultPolicy(Anonymous, r, OpRead), r)
	}
}

func TestAuthorize(t *testing.T) {
	p := NewPolicy()

	assert.NoError(t, Authorize(p, Actor{ID: 2, Role: RoleTeacher}, ResourceCourse, OpWrite))

	err := Authorize(p, Actor{ID: 1, Role: RoleStudent}, ResourceCourse, OpWrite)
	assert.True(t, apperror.IsForbidden(err))
	assert.Contains(t, err.Error(), "student")

	err = Authorize(p, Anonymous, ResourceLesson, OpWrite)
	assert.True(t, apperror.IsForbidden(err))
	assert.Contains(t, err.Error(), "authenticated")
}
