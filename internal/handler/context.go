package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	MyInfoCtx     ContextKey = "myInfo"
	UserInfoCtx   ContextKey = "userInfo"
	StaffInfoCtx  ContextKey = "staffInfo"
	SpaServiceCtx ContextKey = "spaService"
	BookingCtx    ContextKey = "booking"
	WeekStartCtx  ContextKey = "weekStart"
	WeekEndCtx    ContextKey = "weekEnd"
)
