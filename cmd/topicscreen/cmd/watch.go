package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nosorae/nowinandroid-topic-sample/internal/config"
	"github.com/nosorae/nowinandroid-topic-sample/internal/data"
	"github.com/nosorae/nowinandroid-topic-sample/internal/domain"
	"github.com/nosorae/nowinandroid-topic-sample/internal/logging"
	"github.com/nosorae/nowinandroid-topic-sample/internal/pubsub"
	"github.com/nosorae/nowinandroid-topic-sample/internal/topicscreen"
)

var (
	watchTopicID     int64
	watchFollowAfter time.Duration
	watchNewsAfter   time.Duration
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Observe the topic detail screen state",
	Long: `Watch wires the screen state holder to seeded in-memory repositories
and prints every emitted state until interrupted.

Examples:
  topicscreen watch --topic-id 42                     # Observe topic 42
  topicscreen watch --topic-id 42 --follow-after 2s   # Toggle follow after 2s
  topicscreen watch --topic-id 42 --news-after 3s     # Publish a news item after 3s
  topicscreen watch                                   # No topic ID: permanent error slot`,
	RunE: watchHandler,
}

func init() {
	watchCmd.Flags().Int64Var(&watchTopicID, "topic-id", 0, "topic to observe; omit to exercise the missing-argument path")
	watchCmd.Flags().DurationVar(&watchFollowAfter, "follow-after", 0, "toggle the follow flag after this delay (0 disables)")
	watchCmd.Flags().DurationVar(&watchNewsAfter, "news-after", 0, "publish an extra news item after this delay (0 disables)")
	rootCmd.AddCommand(watchCmd)
}

func watchHandler(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	logging.New(cfg.LogFormat)

	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	publisher := pubsub.NewTracingPublisher(bridge)

	topics := data.NewMemoryTopicsRepository(publisher, bridge, seedTopics()...)
	news := data.NewMemoryNewsRepository(publisher, bridge, seedNews()...)

	var screenArgs topicscreen.Args
	if cmd.Flags().Changed("topic-id") {
		id := watchTopicID
		screenArgs.TopicID = &id
	}

	svc := topicscreen.NewService(screenArgs, topics, news,
		topicscreen.WithSubscriptionGrace(cfg.GracePeriod))
	defer svc.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchFollowAfter > 0 {
		time.AfterFunc(watchFollowAfter, func() {
			svc.SetTopicFollowed(true)
		})
	}
	if watchNewsAfter > 0 {
		time.AfterFunc(watchNewsAfter, func() {
			_, err := news.AddNewsResource(ctx, domain.NewsResource{
				Title:       "Breaking: follow-up story",
				Content:     "Later coverage of the observed topic.",
				PublishDate: time.Now().UTC(),
				Type:        "Article",
				TopicIDs:    []int64{watchTopicID},
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to publish news item: %v\n", err)
			}
		})
	}

	states := svc.State().Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-states:
			if !ok {
				return nil
			}
			fmt.Printf("topic=%s news=%s\n", describeTopic(st.Topic), describeNews(st.News))
		}
	}
}

func describeTopic(st topicscreen.TopicUiState) string {
	switch v := st.(type) {
	case topicscreen.TopicSuccess:
		return fmt.Sprintf("%q (followed=%t)", v.Topic.Topic.Name, v.Topic.IsFollowed)
	case topicscreen.TopicError:
		return "error"
	default:
		return "loading"
	}
}

func describeNews(st topicscreen.NewsUiState) string {
	switch v := st.(type) {
	case topicscreen.NewsSuccess:
		return fmt.Sprintf("%d resources", len(v.News))
	case topicscreen.NewsError:
		return "error"
	default:
		return "loading"
	}
}

func seedTopics() []domain.Topic {
	return []domain.Topic{
		{
			ID:               42,
			Name:             "Tech",
			ShortDescription: "Technology news",
			LongDescription:  "Coverage of software, hardware and the industry around them.",
			URL:              "https://example.com/topics/tech",
			ImageURL:         "https://example.com/topics/tech.png",
		},
		{
			ID:               7,
			Name:             "Science",
			ShortDescription: "Science news",
			LongDescription:  "Research findings and commentary.",
			URL:              "https://example.com/topics/science",
			ImageURL:         "https://example.com/topics/science.png",
		},
	}
}

func seedNews() []domain.NewsResource {
	return []domain.NewsResource{
		{
			Title:       "Compilers keep getting faster",
			Content:     "An overview of recent toolchain performance work.",
			URL:         "https://example.com/news/compilers",
			PublishDate: time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC),
			Type:        "Article",
			TopicIDs:    []int64{42},
		},
		{
			Title:       "Deep sea probe returns data",
			Content:     "First measurements from the new probe.",
			URL:         "https://example.com/news/probe",
			PublishDate: time.Date(2026, time.August, 22, 14, 30, 0, 0, time.UTC),
			Type:        "Article",
			TopicIDs:    []int64{7},
		},
	}
}
