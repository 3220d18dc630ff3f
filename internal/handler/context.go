package handler

type ContextKey string

var (
	RoleCtxKey             ContextKey = "role"
	SubCtxKey              ContextKey = "sub"
	MyInfoCtx              ContextKey = "myInfo"
	UserInfoCtx            ContextKey = "userInfo"
	CompanyCtx             ContextKey = "company"
	LocationCtx            ContextKey = "location"
	ShiftTemplateCtx       ContextKey = "shiftTemplate"
	ShiftInstanceCtx       ContextKey = "shiftInstance"
	ShiftAssignmentCtx     ContextKey = "shiftAssignment"
	AvailabilityCtx        ContextKey = "availability"
	BlackoutDayCtx         ContextKey = "blackoutDay"
	SpecialOpeningHoursCtx ContextKey = "specialOpeningHours"
)
