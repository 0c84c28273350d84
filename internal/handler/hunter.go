package handler

import (
	"net/http"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
	"github.com/osse101/HunterSystem_Go/internal/logger"
)

// AddXPRequest is the body of POST /hunter/xp
type AddXPRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
	Amount int64  `json:"amount" validate:"gte=0"`
	Source string `json:"source,omitempty" validate:"max=50"`
}

// QuestRequest is the body of POST /hunter/quests/claim
type QuestRequest struct {
	UserID  string `json:"user_id" validate:"required,max=100"`
	Kind    string `json:"kind" validate:"required,reward_kind"`
	QuestID int    `json:"quest_id" validate:"gt=0"`
}

// ContributeRequest is the body of POST /hunter/quests/contribute
type ContributeRequest struct {
	UserID  string `json:"user_id" validate:"required,max=100"`
	Kind    string `json:"kind" validate:"required,reward_kind"`
	QuestID int    `json:"quest_id" validate:"gt=0"`
	Amount  int    `json:"amount" validate:"gte=0"`
}

// DailyRewardRequest is the body of POST /hunter/daily-reward/claim. A missing day claims today.
type DailyRewardRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
	Day    *int   `json:"day,omitempty"`
}

// SkillRequest is the body of POST /hunter/skills/upgrade
type SkillRequest struct {
	UserID  string `json:"user_id" validate:"required,max=100"`
	SkillID int    `json:"skill_id" validate:"gt=0"`
}

// TitleRequest is the body of POST /hunter/titles/equip
type TitleRequest struct {
	UserID  string `json:"user_id" validate:"required,max=100"`
	TitleID int    `json:"title_id" validate:"gt=0"`
}

// HunterHandler serves the hunter profile and its actions
type HunterHandler struct {
	service hunter.Service
}

// NewHunterHandler creates a new HunterHandler
func NewHunterHandler(service hunter.Service) *HunterHandler {
	return &HunterHandler{service: service}
}

// HandleGetProfile returns the hunter's snapshot with rank and reset info
// @Summary Get hunter profile
// @Description Loads (or seeds) the hunter and applies any pending daily/weekly reset
// @Tags hunter
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} hunter.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /hunter/profile [get]
func (h *HunterHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpGetProfile, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// HandleAddXP awards XP to a hunter
// @Summary Add XP
// @Description Adds XP, rolling over as many levels as the amount covers
// @Tags hunter
// @Accept json
// @Produce json
// @Param request body AddXPRequest true "XP award"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /hunter/xp [post]
func (h *HunterHandler) HandleAddXP(w http.ResponseWriter, r *http.Request) {
	var req AddXPRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpAddXP); err != nil {
		return
	}
	LogRequestFields(logger.FromContext(r.Context()), "user_id", req.UserID, "amount", req.Amount, "source", req.Source)

	result, err := h.service.AddXP(r.Context(), req.UserID, req.Amount, req.Source)
	if err != nil {
		respondServiceError(w, r, OpAddXP, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgXPAdded, Data: result})
}

// HandleClaimQuest claims a completed quest or calendar day
// @Summary Claim quest reward
// @Tags hunter
// @Accept json
// @Produce json
// @Param request body QuestRequest true "Quest to claim"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /hunter/quests/claim [post]
func (h *HunterHandler) HandleClaimQuest(w http.ResponseWriter, r *http.Request) {
	var req QuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpClaimQuest); err != nil {
		return
	}

	kind, err := domain.ParseRewardKind(req.Kind)
	if err != nil {
		respondServiceError(w, r, OpClaimQuest, err)
		return
	}
	LogRequestFields(logger.FromContext(r.Context()), "user_id", req.UserID, "kind", kind, "quest_id", req.QuestID)

	result, err := h.service.ClaimQuest(r.Context(), req.UserID, kind, req.QuestID)
	if err != nil {
		respondServiceError(w, r, OpClaimQuest, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgRewardClaimed, Data: result})
}

// HandleContribute adds progress to a quest
// @Summary Contribute quest progress
// @Description Progress is clamped to the quest total and never claims
// @Tags hunter
// @Accept json
// @Produce json
// @Param request body ContributeRequest true "Progress to add"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /hunter/quests/contribute [post]
func (h *HunterHandler) HandleContribute(w http.ResponseWriter, r *http.Request) {
	var req ContributeRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpContribute); err != nil {
		return
	}

	kind, err := domain.ParseRewardKind(req.Kind)
	if err != nil {
		respondServiceError(w, r, OpContribute, err)
		return
	}

	result, err := h.service.Contribute(r.Context(), req.UserID, kind, req.QuestID, req.Amount)
	if err != nil {
		respondServiceError(w, r, OpContribute, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgProgressAdded, Data: result})
}

// HandleClaimDailyReward claims a calendar day, today when no day is given
// @Summary Claim daily login reward
// @Tags hunter
// @Accept json
// @Produce json
// @Param request body DailyRewardRequest true "Day to claim"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /hunter/daily-reward/claim [post]
func (h *HunterHandler) HandleClaimDailyReward(w http.ResponseWriter, r *http.Request) {
	var req DailyRewardRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpClaimDaily); err != nil {
		return
	}

	var (
		result *hunter.ActionResult
		err    error
	)
	if req.Day == nil {
		result, err = h.service.ClaimToday(r.Context(), req.UserID)
	} else {
		result, err = h.service.ClaimDailyReward(r.Context(), req.UserID, *req.Day)
	}
	if err != nil {
		respondServiceError(w, r, OpClaimDaily, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgRewardClaimed, Data: result})
}

// HandleUpgradeSkill spends skill points on a skill
// @Summary Upgrade skill
// @Tags hunter
// @Accept json
// @Produce json
// @Param request body SkillRequest true "Skill to upgrade"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /hunter/skills/upgrade [post]
func (h *HunterHandler) HandleUpgradeSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpUpgrade); err != nil {
		return
	}

	result, err := h.service.UpgradeSkill(r.Context(), req.UserID, req.SkillID)
	if err != nil {
		respondServiceError(w, r, OpUpgrade, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgSkillUpgraded, Data: result})
}

// HandleEquipTitle equips an unlocked title
// @Summary Equip title
// @Tags hunter
// @Accept json
// @Produce json
// @Param request body TitleRequest true "Title to equip"
// @Success 200 {object} DataResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /hunter/titles/equip [post]
func (h *HunterHandler) HandleEquipTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpEquipTitle); err != nil {
		return
	}

	result, err := h.service.EquipTitle(r.Context(), req.UserID, req.TitleID)
	if err != nil {
		respondServiceError(w, r, OpEquipTitle, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgTitleEquipped, Data: result})
}
