package model

// Tables lists every relational model, in migration order.
func Tables() []any {
	return []any{
		new(Institution),
		new(Student),
		new(Certificate),
		new(VerificationLog),
	}
}
