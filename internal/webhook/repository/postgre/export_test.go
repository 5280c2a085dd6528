package postgre

var (
	Truncate = truncate
	Snapshot = snapshot
)
