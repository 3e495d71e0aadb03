package acts

import (
	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/de-tools/pulse-atlas/pkg/services/survey"
)

// PanelSpec is one chart of an act: either an aggregation over GroupBy or a persona.
type PanelSpec struct {
	Title   string
	Chart   domain.ChartKind
	Caption string
	GroupBy []string
	Metric  domain.Metric
	Persona *survey.Persona
}

// Act is a narrative section of the dashboard.
type Act struct {
	Name       string
	Title      string
	Panels     []PanelSpec
	Conclusion string
}

const (
	NoticeNoEmployees = "No employees match this profile."
	NoticeNoData      = "Not enough data to draw this chart."
)

// DefaultActs returns the five acts in presentation order.
func DefaultActs() []Act {
	return []Act{
		geography(),
		pressure(),
		isolation(),
		productivity(),
		resilience(),
	}
}

// NewDefaultRegistry creates a registry holding DefaultActs.
func NewDefaultRegistry() Registry {
	r, err := NewRegistry(DefaultActs()...)
	if err != nil {
		// the built-in acts have unique names and panels
		panic(err)
	}
	return r
}

func dims(names ...string) []string {
	return names
}

func persona(p survey.Persona) *survey.Persona {
	return &p
}

func geography() Act {
	return Act{
		Name:  "geography",
		Title: "Act I: The New Geography of Work",
		Panels: []PanelSpec{
			{
				Title:   "1. Overall Work Mode Distribution",
				Chart:   domain.ChartPie,
				Caption: "Share of respondents per work mode.",
				Metric:  survey.PercentOfGroup(domain.ColumnWorkLocation),
			},
			{
				Title:   "2. Work Mode by Industry",
				Chart:   domain.ChartBar,
				Caption: "Respondents per industry, split by work mode.",
				GroupBy: dims(domain.ColumnIndustry, domain.ColumnWorkLocation),
				Metric:  survey.Count(),
			},
			{
				Title:   "3. Work Mode by Region",
				Chart:   domain.ChartBar,
				Caption: "Respondents per region, split by work mode.",
				GroupBy: dims(domain.ColumnRegion, domain.ColumnWorkLocation),
				Metric:  survey.Count(),
			},
			{
				Title:   "4. Experience vs Work Mode",
				Chart:   domain.ChartBox,
				Caption: "Years of experience per work mode.",
				GroupBy: dims(domain.ColumnWorkLocation),
				Metric:  survey.Spread(domain.ColumnYearsOfExperience),
			},
		},
		Conclusion: "Work mode is not randomly distributed. " +
			"Industry, region, and experience appear to shape how flexibility is allocated. " +
			"This structural pattern sets the foundation for deeper behavioral analysis in Act II.",
	}
}

func pressure() Act {
	return Act{
		Name:  "pressure",
		Title: "Act II: The Pressure Cooker",
		Panels: []PanelSpec{
			{
				Title:   "1. Average Stress by Work Mode",
				Chart:   domain.ChartBar,
				Caption: "Mean stress level code per work mode.",
				GroupBy: dims(domain.ColumnWorkLocation),
				Metric:  survey.Mean(domain.ColumnStressLevel),
			},
			{
				Title:   "2. Stress Mix within Each Work Mode",
				Chart:   domain.ChartBar,
				Caption: "Percentage of each stress level inside a work mode.",
				GroupBy: dims(domain.ColumnWorkLocation),
				Metric:  survey.PercentOfGroup(domain.ColumnStressLevel),
			},
			{
				Title:   "3. Hours Worked by Work Mode",
				Chart:   domain.ChartBox,
				Caption: "Weekly hours worked per work mode.",
				GroupBy: dims(domain.ColumnWorkLocation),
				Metric:  survey.Spread(domain.ColumnHoursWorked),
			},
			{
				Title:   "4. Virtual Meetings by Stress Level",
				Chart:   domain.ChartScatter,
				Caption: "Mean number of virtual meetings per stress level.",
				GroupBy: dims(domain.ColumnStressLevel),
				Metric:  survey.Mean(domain.ColumnVirtualMeetings),
			},
		},
		Conclusion: "Stress does not follow work mode alone. " +
			"Long hours and meeting load travel with it, wherever people sit.",
	}
}

func isolation() Act {
	return Act{
		Name:  "isolation",
		Title: "Act III: The Isolation Paradox",
		Panels: []PanelSpec{
			{
				Title:   "1. Social Isolation by Work Mode",
				Chart:   domain.ChartBar,
				Caption: "Mean social isolation rating per work mode.",
				GroupBy: dims(domain.ColumnWorkLocation),
				Metric:  survey.Mean(domain.ColumnSocialIsolation),
			},
			{
				Title:   "2. Mental Health Conditions within Each Work Mode",
				Chart:   domain.ChartBar,
				Caption: "Percentage of each reported condition inside a work mode.",
				GroupBy: dims(domain.ColumnWorkLocation),
				Metric:  survey.PercentOfGroup(domain.ColumnMentalHealthCondition),
			},
			{
				Title:   "3. Resource Access vs Condition",
				Chart:   domain.ChartBar,
				Caption: "Respondents per access to mental health resources and condition.",
				GroupBy: dims(domain.ColumnMentalHealthResources, domain.ColumnMentalHealthCondition),
				Metric:  survey.Count(),
			},
			{
				Title:   "4. Isolation by Company Support",
				Chart:   domain.ChartBar,
				Caption: "Mean social isolation rating per level of company support.",
				GroupBy: dims(domain.ColumnCompanySupport),
				Metric:  survey.Mean(domain.ColumnSocialIsolation),
			},
		},
		Conclusion: "Remote work widens the gap between connection and isolation. " +
			"Where support and resources exist, the isolation signal weakens.",
	}
}

func productivity() Act {
	return Act{
		Name:  "productivity",
		Title: "Act IV: The Productivity Illusion",
		Panels: []PanelSpec{
			{
				Title:   "1. Productivity Change within Each Work Mode",
				Chart:   domain.ChartBar,
				Caption: "Percentage of each productivity change inside a work mode.",
				GroupBy: dims(domain.ColumnWorkLocation),
				Metric:  survey.PercentOfGroup(domain.ColumnProductivityChange),
			},
			{
				Title:   "2. Sleep Quality by Productivity Change",
				Chart:   domain.ChartBar,
				Caption: "Percentage of each sleep quality inside a productivity change group.",
				GroupBy: dims(domain.ColumnProductivityChange),
				Metric:  survey.PercentOfGroup(domain.ColumnSleepQuality),
			},
			{
				Title:   "3. Stress by Productivity Change",
				Chart:   domain.ChartBar,
				Caption: "Mean stress level code per productivity change.",
				GroupBy: dims(domain.ColumnProductivityChange),
				Metric:  survey.Mean(domain.ColumnStressLevel),
			},
			{
				Title:   "4. The At-Risk Performer",
				Chart:   domain.ChartPersona,
				Caption: "More productive, but highly stressed and sleeping poorly.",
				Persona: persona(survey.AtRisk),
			},
		},
		Conclusion: "Higher output can hide a cost. " +
			"A group of employees reports rising productivity alongside high stress and poor sleep.",
	}
}

func resilience() Act {
	return Act{
		Name:  "resilience",
		Title: "Act V: The Resilient Remote Worker",
		Panels: []PanelSpec{
			{
				Title:   "1. The Resilient Worker",
				Chart:   domain.ChartPersona,
				Caption: "Best work-life balance despite above-median hours or meetings.",
				Persona: persona(survey.Resilient),
			},
			{
				Title:   "2. Satisfaction within Each Work Mode",
				Chart:   domain.ChartBar,
				Caption: "Percentage of each satisfaction level inside a work mode.",
				GroupBy: dims(domain.ColumnWorkLocation),
				Metric:  survey.PercentOfGroup(domain.ColumnSatisfaction),
			},
			{
				Title:   "3. Physical Activity by Work Mode",
				Chart:   domain.ChartBar,
				Caption: "Respondents per work mode and physical activity habit.",
				GroupBy: dims(domain.ColumnWorkLocation, domain.ColumnPhysicalActivity),
				Metric:  survey.Count(),
			},
			{
				Title:   "4. Work-Life Balance by Physical Activity",
				Chart:   domain.ChartBar,
				Caption: "Mean work-life balance rating per physical activity habit.",
				GroupBy: dims(domain.ColumnPhysicalActivity),
				Metric:  survey.Mean(domain.ColumnWorkLifeBalance),
			},
		},
		Conclusion: "Resilience is not the absence of pressure. " +
			"Balance and routine let some employees carry heavy loads without breaking.",
	}
}
