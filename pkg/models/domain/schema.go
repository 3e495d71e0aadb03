package domain

// Survey column names as they appear in the CSV header.
const (
	ColumnWorkLocation          = "Work_Location"
	ColumnIndustry              = "Industry"
	ColumnRegion                = "Region"
	ColumnYearsOfExperience     = "Years_of_Experience"
	ColumnStressLevel           = "Stress_Level"
	ColumnSocialIsolation       = "Social_Isolation_Rating"
	ColumnWorkLifeBalance       = "Work_Life_Balance_Rating"
	ColumnVirtualMeetings       = "Number_of_Virtual_Meetings"
	ColumnHoursWorked           = "Hours_Worked_Per_Week"
	ColumnCompanySupport        = "Company_Support_for_Remote_Work"
	ColumnMentalHealthResources = "Access_to_Mental_Health_Resources"
	ColumnMentalHealthCondition = "Mental_Health_Condition"
	ColumnProductivityChange    = "Productivity_Change"
	ColumnSleepQuality          = "Sleep_Quality"
	ColumnSatisfaction          = "Satisfaction_with_Remote_Work"
	ColumnPhysicalActivity      = "Physical_Activity"
)

// ColumnClass decides how the normalizer types a column.
type ColumnClass int

const (
	// ClassCategorical columns keep their text and receive first-seen codes.
	ClassCategorical ColumnClass = iota
	// ClassNumeric columns are parsed as numbers; failures become missing.
	ClassNumeric
	// ClassOrdinal columns are numeric when every value parses, coded categories otherwise.
	ClassOrdinal
)

func (c ColumnClass) String() string {
	switch c {
	case ClassNumeric:
		return "numeric"
	case ClassOrdinal:
		return "ordinal"
	default:
		return "categorical"
	}
}

type ColumnDef struct {
	Name  string
	Class ColumnClass
}

// SurveySchema lists the required columns in header order.
var SurveySchema = []ColumnDef{
	{Name: ColumnWorkLocation, Class: ClassCategorical},
	{Name: ColumnIndustry, Class: ClassCategorical},
	{Name: ColumnRegion, Class: ClassCategorical},
	{Name: ColumnYearsOfExperience, Class: ClassNumeric},
	{Name: ColumnStressLevel, Class: ClassOrdinal},
	{Name: ColumnSocialIsolation, Class: ClassOrdinal},
	{Name: ColumnWorkLifeBalance, Class: ClassOrdinal},
	{Name: ColumnVirtualMeetings, Class: ClassNumeric},
	{Name: ColumnHoursWorked, Class: ClassNumeric},
	{Name: ColumnCompanySupport, Class: ClassCategorical},
	{Name: ColumnMentalHealthResources, Class: ClassCategorical},
	{Name: ColumnMentalHealthCondition, Class: ClassCategorical},
	{Name: ColumnProductivityChange, Class: ClassCategorical},
	{Name: ColumnSleepQuality, Class: ClassCategorical},
	{Name: ColumnSatisfaction, Class: ClassCategorical},
	{Name: ColumnPhysicalActivity, Class: ClassCategorical},
}

// RequiredColumns returns the names of SurveySchema.
func RequiredColumns() []string {
	names := make([]string, 0, len(SurveySchema))
	for _, def := range SurveySchema {
		names = append(names, def.Name)
	}
	return names
}

// ClassOf reports the class of a survey column. Unknown columns are categorical.
func ClassOf(column string) ColumnClass {
	for _, def := range SurveySchema {
		if def.Name == column {
			return def.Class
		}
	}
	return ClassCategorical
}
