package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tabsera/recitation-report/internal/models"
)

// SubmissionRepository runs the read-only aggregates over the
// AssignmentPassData collection.
type SubmissionRepository struct {
	passData *mongo.Collection
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{passData: db.Collection(models.CollectionAssignmentPassData)}
}

// GradedByTeacher groups in-window passed/failed submissions by teacher and
// joins the teacher's profile from Users. Rows are ordered by count
// descending.
func (r *SubmissionRepository) GradedByTeacher(ctx context.Context, window models.ReportWindow) ([]models.TeacherGradeCount, error) {
	cursor, err := r.passData.Aggregate(ctx, GradedByTeacherPipeline(window))
	if err != nil {
		return nil, fmt.Errorf("graded-by-teacher aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TeacherID primitive.ObjectID     `bson:"_id"`
		Count     int64                  `bson:"count"`
		Profile   *models.TeacherProfile `bson:"profile"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode graded-by-teacher: %w", err)
	}

	counts := make([]models.TeacherGradeCount, 0, len(rows))
	for _, row := range rows {
		entry := models.TeacherGradeCount{
			TeacherID: row.TeacherID.Hex(),
			Count:     row.Count,
		}
		if row.Profile != nil {
			entry.Name = strings.TrimSpace(row.Profile.FirstName + " " + row.Profile.LastName)
			entry.Email = row.Profile.Email
		}
		counts = append(counts, entry)
	}
	return counts, nil
}

// SubmissionFrequency buckets students by in-window submission count into
// single (exactly one) and multiple (more than one).
func (r *SubmissionRepository) SubmissionFrequency(ctx context.Context, window models.ReportWindow) (models.SubmissionFrequency, error) {
	var freq models.SubmissionFrequency

	cursor, err := r.passData.Aggregate(ctx, SubmissionFrequencyPipeline(window))
	if err != nil {
		return freq, fmt.Errorf("submission frequency aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Single   int64 `bson:"single"`
		Multiple int64 `bson:"multiple"`
		Students int64 `bson:"students"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return freq, fmt.Errorf("decode submission frequency: %w", err)
	}
	if len(rows) == 0 {
		return freq, nil
	}

	freq.SingleSubmission = rows[0].Single
	freq.MultiSubmission = rows[0].Multiple
	freq.TotalStudents = rows[0].Students
	return freq, nil
}

// StatusCounts partitions in-window submissions into the tri-status buckets.
// Raw statuses are grouped server-side and collapsed here so unexpected
// values land in neither.
func (r *SubmissionRepository) StatusCounts(ctx context.Context, window models.ReportWindow) (models.StatusCounts, error) {
	var counts models.StatusCounts

	cursor, err := r.passData.Aggregate(ctx, StatusCountsPipeline(window))
	if err != nil {
		return counts, fmt.Errorf("status counts aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.PassStatus `bson:"_id"`
		Count  int64             `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return counts, fmt.Errorf("decode status counts: %w", err)
	}

	for _, row := range rows {
		switch row.Status.TriStatus() {
		case models.TriPassed:
			counts.Passed += row.Count
		case models.TriFailed:
			counts.Failed += row.Count
		default:
			counts.Neither += row.Count
		}
	}
	return counts, nil
}

// StatusGenderCounts cross-tabulates tri-status by the cohort of the joined
// assignment, defaulting to unknown when the assignment or its cohort is
// missing.
func (r *SubmissionRepository) StatusGenderCounts(ctx context.Context, window models.ReportWindow) (models.StatusGenderBreakdown, error) {
	var breakdown models.StatusGenderBreakdown

	cursor, err := r.passData.Aggregate(ctx, StatusGenderPipeline(window))
	if err != nil {
		return breakdown, fmt.Errorf("status-gender aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key struct {
			Status models.PassStatus `bson:"status"`
			Gender models.Gender     `bson:"gender"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return breakdown, fmt.Errorf("decode status-gender: %w", err)
	}

	for _, row := range rows {
		var cell *models.GenderCounts
		switch row.Key.Status.TriStatus() {
		case models.TriPassed:
			cell = &breakdown.Passed
		case models.TriFailed:
			cell = &breakdown.Failed
		default:
			cell = &breakdown.Neither
		}
		switch row.Key.Gender {
		case models.GenderMale:
			cell.Male += row.Count
		case models.GenderFemale:
			cell.Female += row.Count
		default:
			cell.Unknown += row.Count
		}
	}
	return breakdown, nil
}

// submissionWindowFilter matches in-window submissions, inclusive start and
// exclusive end.
func submissionWindowFilter(window models.ReportWindow) bson.M {
	return bson.M{"createdAt": bson.M{"$gte": window.Start, "$lt": window.End}}
}

// GradedByTeacherPipeline keeps in-window submissions that were actually
// graded (passed or failed) by a teacher, counts them per teacher, and joins
// the profile.
func GradedByTeacherPipeline(window models.ReportWindow) mongo.Pipeline {
	match := submissionWindowFilter(window)
	match["teacher"] = bson.M{"$exists": true, "$ne": nil}
	match["status"] = bson.M{"$in": bson.A{string(models.StatusPassed), string(models.StatusFailed)}}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$teacher",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         models.CollectionUsers,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "profile",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$profile",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
}

// SubmissionFrequencyPipeline counts submissions per student, then folds the
// per-student counts into single/multiple buckets.
func SubmissionFrequencyPipeline(window models.ReportWindow) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: submissionWindowFilter(window)}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$student",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"single":   bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$count", 1}}, 1, 0}}},
			"multiple": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$gt": bson.A{"$count", 1}}, 1, 0}}},
			"students": bson.M{"$sum": 1},
		}}},
	}
}

// StatusCountsPipeline groups in-window submissions by raw status.
func StatusCountsPipeline(window models.ReportWindow) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: submissionWindowFilter(window)}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}
}

// StatusGenderPipeline joins each in-window submission back to its
// assignment and groups by (status, cohort). $ifNull covers both a missing
// assignment and an assignment without a cohort value.
func StatusGenderPipeline(window models.ReportWindow) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: submissionWindowFilter(window)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         models.CollectionAssignments,
			"localField":   "assignment",
			"foreignField": "_id",
			"as":           "assignmentDoc",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$assignmentDoc",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"status": 1,
			"gender": bson.M{"$ifNull": bson.A{"$assignmentDoc.courseGenderForQuran", string(models.GenderUnknown)}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"status": "$status", "gender": "$gender"},
			"count": bson.M{"$sum": 1},
		}}},
	}
}
