package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"go.uber.org/fx"

	"github.com/cibf/call-postprocessor/internal/config"
	"github.com/cibf/call-postprocessor/internal/usecase"
)

const consumeTimeout = 60 * time.Second

// StartConsumeTranscripts subscribes to the call transcript topic and feeds
// completed calls through the processing pipeline. Kafka is optional; when
// disabled the HTTP API is the only ingestion path.
func StartConsumeTranscripts(
	sd fx.Shutdowner,
	lc fx.Lifecycle,
	conf *config.Config,
	processUsecase usecase.ProcessUsecase,
) error {
	if !conf.Kafka.Enabled {
		log.Warnf(context.Background(), "Kafka consumer is disabled in configuration")
		return nil
	}

	saramaConf := sarama.NewConfig()
	saramaConf.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConf.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(conf.Kafka.Brokers, conf.Kafka.GroupID, saramaConf)
	if err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}

	handler := newTranscriptHandler(processUsecase)
	consumeCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow(ctx, "Starting Kafka consumer",
				"topic", conf.Kafka.Topic,
				"group", conf.Kafka.GroupID)

			go func() {
				for err := range group.Errors() {
					log.Errorw(consumeCtx, "Kafka consumer error", "error", err)
				}
			}()

			go func() {
				for {
					// Consume returns on every rebalance; loop until shutdown.
					err := group.Consume(consumeCtx, []string{conf.Kafka.Topic}, handler)
					if consumeCtx.Err() != nil {
						return
					}
					if err != nil {
						log.Errorw(consumeCtx, "Kafka consume session failed", "error", err)
						if errors.Is(err, sarama.ErrClosedConsumerGroup) {
							sd.Shutdown()
							return
						}
						time.Sleep(time.Second)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return group.Close()
		},
	})
	return nil
}

type transcriptHandler struct {
	processUsecase usecase.ProcessUsecase
}

func newTranscriptHandler(processUsecase usecase.ProcessUsecase) *transcriptHandler {
	return &transcriptHandler{processUsecase: processUsecase}
}

func (h *transcriptHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *transcriptHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *transcriptHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		ctx := sess.Context()
		if err := h.handleMessage(ctx, msg.Value); err != nil {
			// A transcript that cannot be processed is logged and skipped;
			// retrying it would block the whole partition.
			log.Errorw(ctx, "Failed to process transcript message",
				"error", err,
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset)
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}

func (h *transcriptHandler) handleMessage(msgCtx context.Context, value []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PANIC RECOVER: %+v", r)
		}
	}()

	event, err := decodeTranscriptEvent(value)
	if err != nil {
		return err
	}
	if event == nil {
		return nil
	}

	log.Infow(msgCtx, "Processing call transcript", "call_id", event.Data.CallID)

	ctx, cancel := context.WithTimeout(msgCtx, consumeTimeout)
	defer cancel()

	_, err = h.processUsecase.ProcessConversation(ctx, event.Data.Conversation)
	return err
}
