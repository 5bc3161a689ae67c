package models

// TeacherGradeCount is one graded-by-teacher row with joined profile info.
type TeacherGradeCount struct {
	TeacherID string `json:"teacherId"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Count     int64  `json:"count"`
}

// DailyUsersBreakdown cross-tabulates first-time versus returning students by
// cohort, with row and column totals.
type DailyUsersBreakdown struct {
	NewMale       int64 `json:"newMale"`
	NewFemale     int64 `json:"newFemale"`
	OldMale       int64 `json:"oldMale"`
	OldFemale     int64 `json:"oldFemale"`
	TotalNew      int64 `json:"totalNew"`
	TotalOld      int64 `json:"totalOld"`
	TotalMale     int64 `json:"totalMale"`
	TotalFemale   int64 `json:"totalFemale"`
	TotalStudents int64 `json:"totalStudents"`
}

// SubmissionFrequency buckets students by their in-window submission volume.
type SubmissionFrequency struct {
	SingleSubmission int64 `json:"singleRecitationStudents"`
	MultiSubmission  int64 `json:"multiRecitationStudents"`
	TotalStudents    int64 `json:"totalStudents"`
}

// StatusCounts holds the tri-status partition of in-window submissions.
type StatusCounts struct {
	Passed  int64 `json:"passed"`
	Failed  int64 `json:"failed"`
	Neither int64 `json:"neither"`
}

// GenderCounts splits a status bucket by cohort. Unknown covers submissions
// whose assignment is missing or carries no cohort value.
type GenderCounts struct {
	Male    int64 `json:"male"`
	Female  int64 `json:"female"`
	Unknown int64 `json:"unknown"`
}

// StatusGenderBreakdown is the tri-status by cohort cross-tabulation.
type StatusGenderBreakdown struct {
	Passed  GenderCounts `json:"passed"`
	Failed  GenderCounts `json:"failed"`
	Neither GenderCounts `json:"neither"`
}

// SurahGenderStat aggregates one (surah, cohort) pair as produced by the
// grouping pipeline, before reshaping into report rows.
type SurahGenderStat struct {
	Surah    string
	Gender   Gender
	Graded   int64
	Ungraded int64
	Passed   int64
	Failed   int64
}

// SurahStat is the per-cohort sub-object of a surah row.
type SurahStat struct {
	Graded   int64 `json:"graded"`
	Ungraded int64 `json:"ungraded"`
	Passed   int64 `json:"passed"`
	Failed   int64 `json:"failed"`
}

// SurahBreakdownRow is one surah with per-cohort sub-objects. A cohort with
// no data for the surah is omitted from the JSON output.
type SurahBreakdownRow struct {
	Surah  string     `json:"surah"`
	Male   *SurahStat `json:"male,omitempty"`
	Female *SurahStat `json:"female,omitempty"`
}

// DailyReport is the assembled daily snapshot. It is built fresh on every
// run and written once; it has no identity beyond the date it covers.
type DailyReport struct {
	TotalRecitations                        int64                 `json:"totalRecitations"`
	TotalMaleRecitations                    int64                 `json:"totalMaleRecitations"`
	MaleRecitationsAsPercentage             float64               `json:"maleRecitationsAsPercentage"`
	TotalFemaleRecitations                  int64                 `json:"totalFemaleRecitations"`
	FemaleRecitationsAsPercentage           float64               `json:"femaleRecitationsAsPercentage"`
	MaleGradedRecitations                   int64                 `json:"maleGradedRecitations"`
	MaleRecitationsGradedAsPercentage       float64               `json:"maleRecitationsGradedAsPercentage"`
	FemaleGradedRecitations                 int64                 `json:"femaleGradedRecitations"`
	FemaleRecitationsGradedAsPercentage     float64               `json:"femaleRecitationsGradedAsPercentage"`
	TotalGradedRecitations                  int64                 `json:"totalGradedRecitations"`
	TotalUngradedRecitations                int64                 `json:"totalUngradedRecitations"`
	UngradedRecitationsAsPercentage         float64               `json:"ungradedRecitationsAsPercentage"`
	TotalRecitationsGradedByTeacher         []TeacherGradeCount   `json:"totalRecitationsGradedByTeacher"`
	TotalDailyUsers                         DailyUsersBreakdown   `json:"totalDailyUsers"`
	MultiRecitationStudents                 SubmissionFrequency   `json:"multiRecitationStudents"`
	AssignmentsCategorizedByStatus          StatusCounts          `json:"assignmentsCategorizedByStatus"`
	AssignmentsCategorizedByStatusAndGender StatusGenderBreakdown `json:"assignmentsCategorizedByStatusAndGender"`
	AssignmentsCategorizedBySurah           []SurahBreakdownRow   `json:"assignmentsCategorizedBySurah"`
}
