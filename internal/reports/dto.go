package reports

// DownloadPath prefixes the report_url returned after a submission.
const DownloadPath = "/api/download-report/"

// SubmitResponse is the success body of a submission.
type SubmitResponse struct {
	Message   string `json:"message"`
	ReportURL string `json:"report_url"`
}
