package domain

// AdmissionDetails is the scraped content of a university admissions
// announcement page.
type AdmissionDetails struct {
	PublishedDate         string        `json:"publishedDate"`
	Description           string        `json:"description"`
	ApplicationDeadline   string        `json:"applicationDeadline"`
	ApplicationFees       AdmissionFees `json:"applicationFees"`
	Courses               []string      `json:"courses"`
	AdmissionRequirements []string      `json:"admissionRequirements"`
}

type AdmissionFees struct {
	Ghanaian      string `json:"ghanaian"`
	International string `json:"international"`
}
