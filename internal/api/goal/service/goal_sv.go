package goalService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/goal"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/money"
	"ourlittleworld/pkg/realtime"
)

func (s *goalService) CreateGoal(ctx context.Context, user entity.UserLoginData, req goal.CreateGoalRequest) (entity.SavingsGoal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, req.CoupleID, user.ID); err != nil {
		return entity.SavingsGoal{}, err
	}

	target, err := money.FromFloat(req.TargetAmount)
	if err != nil {
		return entity.SavingsGoal{}, goal.ErrInvalidAmount
	}
	current, err := money.FromFloat(req.CurrentAmount)
	if err != nil {
		return entity.SavingsGoal{}, goal.ErrInvalidAmount
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return entity.SavingsGoal{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = string(entity.GoalPriorityMedium)
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate goal ID")
		return entity.SavingsGoal{}, goal.ErrCreateGoal
	}

	goalRow := entity.SavingsGoal{
		ID:            id,
		CoupleID:      req.CoupleID,
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  target,
		CurrentAmount: current,
		Icon:          req.Icon,
		Color:         req.Color,
		Deadline:      deadline,
		Priority:      entity.GoalPriority(priority),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if goalRow.CurrentAmount >= goalRow.TargetAmount {
		goalRow.MarkCompleted(time.Now())
	}

	if err := goalRow.Validate(); err != nil {
		return entity.SavingsGoal{}, err
	}

	repo, err := s.goalRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.SavingsGoal{}, err
	}

	if err := repo.Goal.CreateGoal(ctx, goalRow); err != nil {
		return entity.SavingsGoal{}, goal.ErrCreateGoal
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventGoalUpdated,
		CoupleID: goalRow.CoupleID,
		Entity:   goalRow,
	})

	return goalRow, nil
}

func (s *goalService) GetGoalsByCouple(ctx context.Context, user entity.UserLoginData, coupleID string) ([]entity.SavingsGoal, error) {
	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return nil, err
	}

	repo, err := s.goalRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Goal.GetGoalsByCouple(ctx, coupleID)
}

func (s *goalService) UpdateGoal(ctx context.Context, user entity.UserLoginData, req goal.UpdateGoalRequest) (entity.SavingsGoal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, req.CoupleID, user.ID); err != nil {
		return entity.SavingsGoal{}, err
	}

	repo, err := s.goalRepository.NewClient(false)
	if err != nil {
		return entity.SavingsGoal{}, err
	}

	goalRow, err := repo.Goal.GetGoalByID(ctx, req.CoupleID, req.ID)
	if err != nil {
		return entity.SavingsGoal{}, err
	}

	target, err := money.FromFloat(req.TargetAmount)
	if err != nil {
		return entity.SavingsGoal{}, goal.ErrInvalidAmount
	}
	current, err := money.FromFloat(req.CurrentAmount)
	if err != nil {
		return entity.SavingsGoal{}, goal.ErrInvalidAmount
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return entity.SavingsGoal{}, err
	}

	goalRow.Title = req.Title
	goalRow.Description = req.Description
	goalRow.TargetAmount = target
	goalRow.CurrentAmount = current
	goalRow.Icon = req.Icon
	goalRow.Color = req.Color
	goalRow.Deadline = deadline
	if req.Priority != "" {
		goalRow.Priority = entity.GoalPriority(req.Priority)
	}
	goalRow.UpdatedAt = time.Now()

	if !goalRow.IsCompleted && goalRow.CurrentAmount >= goalRow.TargetAmount {
		goalRow.MarkCompleted(time.Now())
	}

	if err := goalRow.Validate(); err != nil {
		return entity.SavingsGoal{}, err
	}

	if err := repo.Goal.UpdateGoal(ctx, goalRow); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update goal")
		return entity.SavingsGoal{}, err
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventGoalUpdated,
		CoupleID: goalRow.CoupleID,
		Entity:   goalRow,
	})

	return goalRow, nil
}

// Contribute adds a positive amount to the running total and flips the
// goal to completed when the target is reached.
func (s *goalService) Contribute(ctx context.Context, user entity.UserLoginData, req goal.ContributeRequest) (entity.SavingsGoal, error) {
	if err := s.membership.EnsureMember(ctx, req.CoupleID, user.ID); err != nil {
		return entity.SavingsGoal{}, err
	}

	amount, err := money.FromFloat(req.Amount)
	if err != nil || amount <= 0 {
		return entity.SavingsGoal{}, goal.ErrInvalidAmount
	}

	repo, err := s.goalRepository.NewClient(false)
	if err != nil {
		return entity.SavingsGoal{}, err
	}

	goalRow, err := repo.Goal.GetGoalByID(ctx, req.CoupleID, req.ID)
	if err != nil {
		return entity.SavingsGoal{}, err
	}

	goalRow.CurrentAmount += amount
	goalRow.UpdatedAt = time.Now()

	if !goalRow.IsCompleted && goalRow.CurrentAmount >= goalRow.TargetAmount {
		goalRow.MarkCompleted(time.Now())
	}

	if err := repo.Goal.UpdateGoal(ctx, goalRow); err != nil {
		return entity.SavingsGoal{}, err
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventGoalUpdated,
		CoupleID: goalRow.CoupleID,
		Entity:   goalRow,
	})

	return goalRow, nil
}

// CompleteGoal marks the goal done regardless of progress. Calling it
// again just refreshes the completion timestamp.
func (s *goalService) CompleteGoal(ctx context.Context, user entity.UserLoginData, coupleID string, id string) (entity.SavingsGoal, error) {
	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return entity.SavingsGoal{}, err
	}

	repo, err := s.goalRepository.NewClient(false)
	if err != nil {
		return entity.SavingsGoal{}, err
	}

	goalRow, err := repo.Goal.GetGoalByID(ctx, coupleID, id)
	if err != nil {
		return entity.SavingsGoal{}, err
	}

	goalRow.MarkCompleted(time.Now())
	goalRow.UpdatedAt = time.Now()

	if err := repo.Goal.UpdateGoal(ctx, goalRow); err != nil {
		return entity.SavingsGoal{}, err
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventGoalUpdated,
		CoupleID: goalRow.CoupleID,
		Entity:   goalRow,
	})

	return goalRow, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, user entity.UserLoginData, coupleID string, id string) error {
	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return err
	}

	repo, err := s.goalRepository.NewClient(false)
	if err != nil {
		return err
	}

	if err := repo.Goal.DeleteGoal(ctx, coupleID, id); err != nil {
		return err
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventGoalUpdated,
		CoupleID: coupleID,
		Entity:   map[string]string{"id": id, "deleted": "true"},
	})

	return nil
}

func parseDeadline(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, goal.ErrInvalidDeadline
	}

	return &t, nil
}
