package domain

type CtxKey string

const (
	KeyUserID        CtxKey = "UserID"
	KeyUserEmail     CtxKey = "Email"
	KeyUserFirstName CtxKey = "FirstName"
	KeyUserLastName  CtxKey = "LastName"
	KeyRequestID     CtxKey = "RequestID"
)
