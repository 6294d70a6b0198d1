package schedule

// Approval states shared by leave requests and reschedule requests.
// Approved and rejected are terminal.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)
