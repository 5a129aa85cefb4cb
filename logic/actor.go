package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/luxfi/log"

	"github.com/luxthread/rewardengine/actormbox"
	"github.com/luxthread/rewardengine/ft"
	"github.com/luxthread/rewardengine/model"
	"github.com/luxthread/rewardengine/reward"
	"github.com/luxthread/rewardengine/storage"
)

// Logic dispatches user actions, sequencing FT escrow with Storage writes
// in the order the ordering rule requires: the FT transfer-in always
// precedes the Storage write, never the reverse.
type Logic struct {
	*actormbox.Actor

	admin         model.ActorId
	escrowAccount model.ActorId

	ftAddr      model.ActorId
	storageAddr model.ActorId
	rewardAddr  model.ActorId

	ft      ft.Sender
	storage *storage.Storage
	reward  *reward.Reward

	sequencer *model.Sequencer
	clock     func() model.Timestamp

	expireDelay    time.Duration
	scheduleExpire func(model.PostId, time.Duration)
}

// Config bundles the dependencies Logic is constructed with.
type Config struct {
	Admin          model.ActorId
	EscrowAccount  model.ActorId
	FT             ft.Sender
	Storage        *storage.Storage
	Reward         *reward.Reward
	Sequencer      *model.Sequencer
	Clock          func() model.Timestamp
	// ExpireDelay is how long after creation a thread is scheduled to
	// expire via ScheduleExpire. Zero means ScheduleExpire is invoked with
	// a zero delay. A nil ScheduleExpire schedules nothing.
	ExpireDelay    time.Duration
	ScheduleExpire func(model.PostId, time.Duration)
	Logger         log.Logger
	MailboxSize    int
}

// New constructs and starts a Logic actor from cfg.
func New(cfg Config) *Logic {
	clock := cfg.Clock
	if clock == nil {
		clock = func() model.Timestamp { return model.Timestamp(time.Now().Unix()) }
	}
	l := &Logic{
		admin:          cfg.Admin,
		escrowAccount:  cfg.EscrowAccount,
		ft:             cfg.FT,
		storage:        cfg.Storage,
		reward:         cfg.Reward,
		sequencer:      cfg.Sequencer,
		clock:          clock,
		expireDelay:    cfg.ExpireDelay,
		scheduleExpire: cfg.ScheduleExpire,
	}
	l.Actor = actormbox.New("logic", cfg.Logger, cfg.MailboxSize, l.handle)
	l.Start()
	return l
}

func (l *Logic) handle(ctx context.Context, req any) (any, error) {
	r, ok := req.(Request)
	if !ok {
		return nil, fmt.Errorf("logic: unsupported request %T", req)
	}
	switch m := r.(type) {
	case AddAddressFT:
		l.ftAddr = m.Addr
		return FTAddressAdded{}, nil
	case AddAddressStorage:
		l.storageAddr = m.Addr
		return StorageAddressAdded{}, nil
	case AddAddressRewardLogic:
		l.rewardAddr = m.Addr
		return RewardLogicAddressAdded{}, nil
	case NewThread:
		return l.newThread(ctx, m), nil
	case AddReply:
		return l.addReply(ctx, m), nil
	case LikeReply:
		return l.likeReply(ctx, m), nil
	case ReportReply:
		return l.reportReply(ctx, m), nil
	case ExpireThread:
		return l.expireThread(ctx, m), nil
	default:
		return nil, fmt.Errorf("logic: unsupported request %T", req)
	}
}

func (l *Logic) notConfigured() bool {
	return l.ftAddr.IsZero() || l.storageAddr.IsZero() || l.rewardAddr.IsZero()
}

func (l *Logic) newThread(ctx context.Context, m NewThread) Reply {
	if l.notConfigured() {
		return LogicError{Stage: "config", Reason: "ft, storage or reward address not configured"}
	}
	post, err := model.NewPost(l.sequencer.Next(), l.clock(), m.Caller, model.PostInit{
		Title: m.Title, Content: m.Content, PhotoUrl: m.PhotoUrl,
	})
	if err != nil {
		return LogicError{Stage: "build_post", Reason: err.Error()}
	}
	thread := model.NewThread(post, m.ThreadType)

	if err := l.ftCall(ctx, ft.Mint{Recipient: l.escrowAccount, Amount: model.NewAmount(1)}); err != nil {
		return LogicError{Stage: "ft_mint", Reason: err.Error()}
	}

	reply, err := l.storage.Send(ctx, storage.PushThread{Caller: m.Caller, Thread: thread})
	if err != nil {
		return LogicError{Stage: "storage_push_thread", Reason: err.Error()}
	}
	if se, isErr := reply.(storage.StorageError); isErr {
		return LogicError{Stage: "storage_push_thread", Reason: se.Reason}
	}

	if l.scheduleExpire != nil {
		l.scheduleExpire(post.PostId, l.expireDelay)
	}
	return NewThreadCreated{PostId: post.PostId}
}

func (l *Logic) addReply(ctx context.Context, m AddReply) Reply {
	if l.notConfigured() {
		return LogicError{Stage: "config", Reason: "ft, storage or reward address not configured"}
	}
	post, err := model.NewPost(l.sequencer.Next(), l.clock(), m.Caller, model.PostInit{
		Title: m.Title, Content: m.Content, PhotoUrl: m.PhotoUrl,
	})
	if err != nil {
		return LogicError{Stage: "build_post", Reason: err.Error()}
	}
	reply := model.NewReply(post)

	if err := l.requireActive(ctx, m.ThreadId); err != nil {
		return LogicError{Stage: "storage_push_reply", Reason: err.Error()}
	}
	if err := l.ftCall(ctx, ft.Transfer{Sender: m.Caller, Recipient: l.escrowAccount, Amount: model.NewAmount(1)}); err != nil {
		return LogicError{Stage: "ft_transfer", Reason: err.Error()}
	}

	ev, err := l.storage.Send(ctx, storage.PushReply{ThreadId: m.ThreadId, Reply: reply, ReferralPostId: m.ReferralPostId})
	if err != nil {
		return LogicError{Stage: "storage_push_reply", Reason: err.Error()}
	}
	if se, isErr := ev.(storage.StorageError); isErr {
		return LogicError{Stage: "storage_push_reply", Reason: se.Reason}
	}
	return ReplyAdded{By: m.Caller, Id: post.PostId, OnThread: m.ThreadId}
}

func (l *Logic) likeReply(ctx context.Context, m LikeReply) Reply {
	if l.notConfigured() {
		return LogicError{Stage: "config", Reason: "ft, storage or reward address not configured"}
	}
	if err := l.requireActive(ctx, m.ThreadId); err != nil {
		return LogicError{Stage: "storage_like_reply", Reason: err.Error()}
	}
	if err := l.ftCall(ctx, ft.Transfer{Sender: m.Caller, Recipient: l.escrowAccount, Amount: m.Amount}); err != nil {
		return LogicError{Stage: "ft_transfer", Reason: err.Error()}
	}
	ev, err := l.storage.Send(ctx, storage.LikeReply{Caller: m.Caller, ThreadId: m.ThreadId, ReplyId: m.ReplyId, Amount: m.Amount})
	if err != nil {
		return LogicError{Stage: "storage_like_reply", Reason: err.Error()}
	}
	if se, isErr := ev.(storage.StorageError); isErr {
		return LogicError{Stage: "storage_like_reply", Reason: se.Reason}
	}
	return ReplyLiked{}
}

// reportReply moves no tokens; it is a moderation signal only, so unlike
// addReply/likeReply it makes no requireActive check and no FT call.
func (l *Logic) reportReply(ctx context.Context, m ReportReply) Reply {
	if l.notConfigured() {
		return LogicError{Stage: "config", Reason: "ft, storage or reward address not configured"}
	}
	ev, err := l.storage.Send(ctx, storage.ReportReply{Caller: m.Caller, ThreadId: m.ThreadId, ReplyId: m.ReplyId})
	if err != nil {
		return LogicError{Stage: "storage_report_reply", Reason: err.Error()}
	}
	se, isErr := ev.(storage.StorageError)
	if isErr {
		return LogicError{Stage: "storage_report_reply", Reason: se.Reason}
	}
	return ReplyReported{Hidden: ev.(storage.ReplyReported).Hidden}
}

// expireThread invokes Reward.TriggerRewardLogic only after Storage has
// recorded that a distribution has begun; only upon reward's success does
// it advance the thread to Expired. On any failure the thread stays
// Active with its DistributionStarted flag set, so a repeated ExpireThread
// is rejected; FT transfers Reward issued before the failing one are not
// reversed.
func (l *Logic) expireThread(ctx context.Context, m ExpireThread) Reply {
	if l.notConfigured() {
		return LogicError{Stage: "config", Reason: "ft, storage or reward address not configured"}
	}
	ev, err := l.storage.Send(ctx, storage.BeginDistribution{ThreadId: m.ThreadId})
	if err != nil {
		return LogicError{Stage: "begin_distribution", Reason: err.Error()}
	}
	if se, isErr := ev.(storage.StorageError); isErr {
		return LogicError{Stage: "begin_distribution", Reason: se.Reason}
	}

	rewardReply, err := l.reward.Send(ctx, reward.TriggerRewardLogic{ThreadId: m.ThreadId})
	if err != nil {
		return LogicError{Stage: "trigger_reward_logic", Reason: err.Error()}
	}
	if re, isErr := rewardReply.(reward.RewardError); isErr {
		return LogicError{Stage: "trigger_reward_logic", Reason: fmt.Sprintf("%s: %s", re.Stage, re.Reason)}
	}

	ev, err = l.storage.Send(ctx, storage.ChangeStatusState{Caller: l.admin, ThreadId: m.ThreadId})
	if err != nil {
		return LogicError{Stage: "change_status_state", Reason: err.Error()}
	}
	if se, isErr := ev.(storage.StorageError); isErr {
		return LogicError{Stage: "change_status_state", Reason: se.Reason}
	}
	return ThreadExpired{}
}

// requireActive checks a thread's status before any escrow transfer is
// attempted, so a rejected mutation on an expired or missing thread never
// moves tokens (scenario: expired thread rejects mutations).
func (l *Logic) requireActive(ctx context.Context, threadId model.PostId) error {
	reply, err := l.storage.Send(ctx, storage.ThreadActive{ThreadId: threadId})
	if err != nil {
		return err
	}
	if !reply.(bool) {
		return fmt.Errorf("thread expired")
	}
	return nil
}

func (l *Logic) ftCall(ctx context.Context, req ft.Request) error {
	reply, err := l.ft.Send(ctx, req)
	if err != nil {
		return err
	}
	if e, isErr := reply.(ft.Err); isErr {
		return fmt.Errorf("ft rejected request: %s", e.Reason)
	}
	return nil
}
