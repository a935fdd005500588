package domain

// RouteState holds route-level aggregates of the committed schedule.
// Nil fields have not been computed.
type RouteState struct {
	LoadAtBeginning Capacity
	LoadAtEnd       Capacity
	MaxLoad         Capacity
	MinLoad         Capacity
}

// ActivityState holds per-activity aggregates of the committed schedule.
//
//	Load              load on board right after the activity
//	PastMaxLoad/Min   extreme load from route start up to the activity, inclusive
//	FutureMaxLoad/Min extreme load from the activity to route end, inclusive
//	LatestOperationStart latest start that keeps every downstream window satisfied
//	FutureWaiting     idle time accumulated from the activity onward
type ActivityState struct {
	Load                 Capacity
	PastMaxLoad          Capacity
	PastMinLoad          Capacity
	FutureMaxLoad        Capacity
	FutureMinLoad        Capacity
	LatestOperationStart *float64
	FutureWaiting        *float64
}
