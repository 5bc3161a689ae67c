package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tabsera/recitation-report/internal/models"
)

// RecitationRepository runs the read-only aggregates over the Assignments
// collection. It never mutates data.
type RecitationRepository struct {
	assignments *mongo.Collection
}

// NewRecitationRepository instantiates the repository.
func NewRecitationRepository(db *mongo.Database) *RecitationRepository {
	return &RecitationRepository{assignments: db.Collection(models.CollectionAssignments)}
}

// CountRecitations counts in-window assignments carrying a Quran cohort.
func (r *RecitationRepository) CountRecitations(ctx context.Context, window models.ReportWindow) (int64, error) {
	n, err := r.assignments.CountDocuments(ctx, recitationFilter(window, nil, nil))
	if err != nil {
		return 0, fmt.Errorf("count recitations: %w", err)
	}
	return n, nil
}

// CountRecitationsByGender counts in-window recitations for one cohort.
func (r *RecitationRepository) CountRecitationsByGender(ctx context.Context, window models.ReportWindow, gender models.Gender) (int64, error) {
	n, err := r.assignments.CountDocuments(ctx, recitationFilter(window, &gender, nil))
	if err != nil {
		return 0, fmt.Errorf("count %s recitations: %w", gender, err)
	}
	return n, nil
}

// CountGradedRecitations counts in-window graded recitations for one cohort.
func (r *RecitationRepository) CountGradedRecitations(ctx context.Context, window models.ReportWindow, gender models.Gender) (int64, error) {
	graded := true
	n, err := r.assignments.CountDocuments(ctx, recitationFilter(window, &gender, &graded))
	if err != nil {
		return 0, fmt.Errorf("count graded %s recitations: %w", gender, err)
	}
	return n, nil
}

// SurahBreakdown groups in-window recitations by (surah, cohort) with graded
// counts and joined passed/failed submission counts.
func (r *RecitationRepository) SurahBreakdown(ctx context.Context, window models.ReportWindow) ([]models.SurahGenderStat, error) {
	cursor, err := r.assignments.Aggregate(ctx, SurahBreakdownPipeline(window))
	if err != nil {
		return nil, fmt.Errorf("surah breakdown aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key struct {
			Surah  string        `bson:"surah"`
			Gender models.Gender `bson:"gender"`
		} `bson:"_id"`
		Total  int64 `bson:"total"`
		Graded int64 `bson:"graded"`
		Passed int64 `bson:"passed"`
		Failed int64 `bson:"failed"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode surah breakdown: %w", err)
	}

	stats := make([]models.SurahGenderStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, models.SurahGenderStat{
			Surah:    row.Key.Surah,
			Gender:   row.Key.Gender,
			Graded:   row.Graded,
			Ungraded: row.Total - row.Graded,
			Passed:   row.Passed,
			Failed:   row.Failed,
		})
	}
	return stats, nil
}

// DailyUsers classifies every student with an in-window submission against a
// recitation as new (no submission before the window) or old, split by the
// assignment's cohort. It runs as one coherent pipeline because the
// prior-existence check depends on the per-student grouping.
func (r *RecitationRepository) DailyUsers(ctx context.Context, window models.ReportWindow) (models.DailyUsersBreakdown, error) {
	var breakdown models.DailyUsersBreakdown

	cursor, err := r.assignments.Aggregate(ctx, DailyUsersPipeline(window))
	if err != nil {
		return breakdown, fmt.Errorf("daily users aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key struct {
			IsNew  bool          `bson:"isNew"`
			Gender models.Gender `bson:"gender"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return breakdown, fmt.Errorf("decode daily users: %w", err)
	}

	for _, row := range rows {
		switch {
		case row.Key.IsNew && row.Key.Gender == models.GenderMale:
			breakdown.NewMale += row.Count
		case row.Key.IsNew && row.Key.Gender == models.GenderFemale:
			breakdown.NewFemale += row.Count
		case !row.Key.IsNew && row.Key.Gender == models.GenderMale:
			breakdown.OldMale += row.Count
		case !row.Key.IsNew && row.Key.Gender == models.GenderFemale:
			breakdown.OldFemale += row.Count
		}
	}
	breakdown.TotalNew = breakdown.NewMale + breakdown.NewFemale
	breakdown.TotalOld = breakdown.OldMale + breakdown.OldFemale
	breakdown.TotalMale = breakdown.NewMale + breakdown.OldMale
	breakdown.TotalFemale = breakdown.NewFemale + breakdown.OldFemale
	breakdown.TotalStudents = breakdown.TotalNew + breakdown.TotalOld
	return breakdown, nil
}

// recitationFilter builds the shared in-window recitation match. A concrete
// gender value implies presence, so it replaces the $exists clause.
func recitationFilter(window models.ReportWindow, gender *models.Gender, graded *bool) bson.M {
	filter := bson.M{
		"creationDate":         bson.M{"$gte": window.Start, "$lt": window.End},
		"courseGenderForQuran": bson.M{"$exists": true},
	}
	if gender != nil {
		filter["courseGenderForQuran"] = *gender
	}
	if graded != nil {
		filter["isGraded"] = *graded
	}
	return filter
}

// SurahBreakdownPipeline groups in-window recitations by (surah, cohort),
// summing graded flags and counting passed/failed joined submissions.
func SurahBreakdownPipeline(window models.ReportWindow) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: recitationFilter(window, nil, nil)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         models.CollectionAssignmentPassData,
			"localField":   "_id",
			"foreignField": "assignment",
			"as":           "submissions",
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"surah": "$name", "gender": "$courseGenderForQuran"},
			"total":  bson.M{"$sum": 1},
			"graded": bson.M{"$sum": bson.M{"$cond": bson.A{"$isGraded", 1, 0}}},
			"passed": bson.M{"$sum": submissionCountWithStatus(models.StatusPassed)},
			"failed": bson.M{"$sum": submissionCountWithStatus(models.StatusFailed)},
		}}},
	}
}

func submissionCountWithStatus(status models.PassStatus) bson.M {
	return bson.M{"$size": bson.M{"$filter": bson.M{
		"input": "$submissions",
		"as":    "sub",
		"cond":  bson.M{"$eq": bson.A{"$$sub.status", string(status)}},
	}}}
}

// DailyUsersPipeline joins in-window submissions onto in-window recitations,
// groups them per student, checks for any submission strictly before the
// window start, and counts the resulting (new/old, cohort) cells.
func DailyUsersPipeline(window models.ReportWindow) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: recitationFilter(window, nil, nil)}},
		{{Key: "$lookup", Value: bson.M{
			"from": models.CollectionAssignmentPassData,
			"let":  bson.M{"assignmentId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$assignment", "$$assignmentId"}},
					bson.M{"$gte": bson.A{"$createdAt", window.Start}},
					bson.M{"$lt": bson.A{"$createdAt", window.End}},
				}}}},
			},
			"as": "submissions",
		}}},
		{{Key: "$unwind", Value: "$submissions"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$submissions.student",
			"earliest": bson.M{"$min": "$submissions.createdAt"},
			"gender":   bson.M{"$first": "$courseGenderForQuran"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": models.CollectionAssignmentPassData,
			"let":  bson.M{"studentId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$student", "$$studentId"}},
					bson.M{"$lt": bson.A{"$createdAt", window.Start}},
				}}}},
				bson.M{"$limit": 1},
				bson.M{"$project": bson.M{"_id": 1}},
			},
			"as": "previous",
		}}},
		{{Key: "$project", Value: bson.M{
			"gender": 1,
			"isNew":  bson.M{"$eq": bson.A{bson.M{"$size": "$previous"}, 0}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"isNew": "$isNew", "gender": "$gender"},
			"count": bson.M{"$sum": 1},
		}}},
	}
}
