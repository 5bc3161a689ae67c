package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names owned by the upstream learning platform. The report only
// ever reads from them.
const (
	CollectionAssignments        = "Assignments"
	CollectionAssignmentPassData = "AssignmentPassData"
	CollectionUsers              = "Users"
)

// Gender labels a Quran course cohort.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	// GenderUnknown marks submissions whose assignment carries no cohort value.
	GenderUnknown Gender = "unknown"
)

// PassStatus is the raw grading outcome stored on a submission.
type PassStatus string

const (
	StatusInitial PassStatus = "initial"
	StatusPassed  PassStatus = "passed"
	StatusFailed  PassStatus = "failed"
)

// Tri-status buckets used by the report. Every submission falls into exactly
// one of them.
const (
	TriPassed  = "passed"
	TriFailed  = "failed"
	TriNeither = "neither"
)

// TriStatus collapses a grading outcome into passed/failed/neither.
func (s PassStatus) TriStatus() string {
	switch s {
	case StatusPassed:
		return TriPassed
	case StatusFailed:
		return TriFailed
	default:
		return TriNeither
	}
}

// Assignment is one recitation submission task. Records without
// CourseGenderForQuran are not recitations and stay out of every
// recitation-specific aggregate.
type Assignment struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Name                 string             `bson:"name"`
	CreationDate         time.Time          `bson:"creationDate"`
	IsGraded             bool               `bson:"isGraded"`
	CourseGenderForQuran *Gender            `bson:"courseGenderForQuran,omitempty"`
}

// AssignmentPassData is one student submission event against an assignment.
type AssignmentPassData struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	Student    primitive.ObjectID  `bson:"student"`
	Assignment primitive.ObjectID  `bson:"assignment"`
	Teacher    *primitive.ObjectID `bson:"teacher,omitempty"`
	Status     PassStatus          `bson:"status"`
	CreatedAt  time.Time           `bson:"createdAt"`
}

// TeacherProfile carries the profile fields joined onto graded-by-teacher
// rows from the Users collection.
type TeacherProfile struct {
	ID        primitive.ObjectID `bson:"_id"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Email     string             `bson:"email"`
}
