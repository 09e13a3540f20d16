package email

const (
	subjectLeaseSentFmt = "Your lease for %s"
)
