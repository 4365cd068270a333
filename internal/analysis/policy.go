package analysis

// Policy holds the rule-of-thumb constants the engine scores with. They are
// not calibrated against any published scoring model; treat them as tunables.
type Policy struct {
	LatePaymentPenalty    int     // points off payment history per account not current
	UtilizationMultiplier float64 // points off utilization per percent utilized
	AgePointsPerYear      float64
	MixPointsPerType      int
	InquiryPenalty        int // points off new credit per recent hard inquiry

	InquiryWindowMonths   int
	InquiryThreshold      int // hard inquiries tolerated before an issue is raised
	InquiryImpactPerExtra int

	UtilizationIssuePercent float64 // per-account utilization that raises an issue
	UtilizationMajorPercent float64
	UtilizationImpactCap    int // 0 disables the cap

	CollectionImpact   int
	PublicRecordImpact int

	StaleTradelineYears  float64
	StaleCollectionYears float64
	MinAccountTypes      int

	HealthExcellent int
	HealthGood      int
	HealthFair      int
	HealthPoor      int
}

// DefaultPolicy returns the stock constants.
func DefaultPolicy() Policy {
	return Policy{
		LatePaymentPenalty:      15,
		UtilizationMultiplier:   2,
		AgePointsPerYear:        10,
		MixPointsPerType:        25,
		InquiryPenalty:          20,
		InquiryWindowMonths:     12,
		InquiryThreshold:        4,
		InquiryImpactPerExtra:   5,
		UtilizationIssuePercent: 30,
		UtilizationMajorPercent: 70,
		UtilizationImpactCap:    0,
		CollectionImpact:        100,
		PublicRecordImpact:      150,
		StaleTradelineYears:     6.5,
		StaleCollectionYears:    6,
		MinAccountTypes:         3,
		HealthExcellent:         750,
		HealthGood:              700,
		HealthFair:              650,
		HealthPoor:              550,
	}
}

// lateImpacts maps a delinquency bucket in days to its estimated score impact.
var lateImpacts = []struct {
	days   int
	impact int
}{
	{150, 120},
	{120, 100},
	{90, 70},
	{60, 40},
	{30, 20},
}

// lateImpact returns the estimated impact for the given bucket. Buckets below
// 30 days and non-numeric statuses (collection, charge-off) score as 30-day.
func lateImpact(days int) int {
	for _, li := range lateImpacts {
		if days >= li.days {
			return li.impact
		}
	}
	return 20
}
