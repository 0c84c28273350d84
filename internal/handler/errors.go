package handler

// Client-facing request errors. Internal error details never reach the response.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgEmptyBody             = "Request body is empty"
	ErrMsgTrailingData          = "Request body must hold a single JSON object"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
)

// Success messages for API responses
const (
	MsgXPAdded           = "XP added"
	MsgRewardClaimed     = "Reward claimed"
	MsgProgressAdded     = "Progress added"
	MsgSkillUpgraded     = "Skill upgraded"
	MsgTitleEquipped     = "Title equipped"
	MsgReconcileComplete = "Reconciliation completed"
)

// Operation names used in logs
const (
	OpGetProfile = "Get profile"
	OpAddXP      = "Add XP"
	OpClaimQuest = "Claim quest"
	OpContribute = "Contribute"
	OpClaimDaily = "Claim daily reward"
	OpUpgrade    = "Upgrade skill"
	OpEquipTitle = "Equip title"
	OpReconcile  = "Reconcile hunters"
)
