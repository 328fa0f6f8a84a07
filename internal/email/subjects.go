package email

const (
	subjectHotLeadAlert = "New Hot Lead Alert"
	subjectLeadReport   = "Filtered Leads Report"
)
