package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	errors "github.com/marcelchiarello/Meepot/internal"
	eventDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/event"
	"github.com/marcelchiarello/Meepot/internal/event"
)

func TestEventRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "EventRepository Suite")
}

// SQLite shims without the postgres column defaults.
type SQLiteEvent struct {
	ID          string    `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"column:description"`
	OrganizerID string    `gorm:"column:organizer_id;not null;index"`
	Currency    string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteEvent) TableName() string {
	return "events"
}

type SQLiteParticipant struct {
	ID          string    `gorm:"primaryKey"`
	EventID     string    `gorm:"column:event_id;not null;index"`
	DisplayName string    `gorm:"column:display_name;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (SQLiteParticipant) TableName() string {
	return "event_participants"
}

var _ = Describe("EventRepository", func() {
	var (
		db   *gorm.DB
		repo event.RepositoryAPI
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteEvent{}, &SQLiteParticipant{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewEventRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create and GetByID", func() {
		It("round-trips an event", func() {
			now := time.Now()
			ev := &eventDatamodel.Event{
				ID:          "event-1",
				Name:        "Weekend Trip",
				OrganizerID: "alice",
				Currency:    "EUR",
				CreatedAt:   now,
				UpdatedAt:   now,
			}

			Expect(repo.Create(ev)).To(Succeed())

			retrieved, err := repo.GetByID("event-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Name).To(Equal("Weekend Trip"))
			Expect(retrieved.OrganizerID).To(Equal("alice"))
		})

		It("returns ErrEventNotFound for a missing id", func() {
			_, err := repo.GetByID("nope")
			Expect(err).To(Equal(errors.ErrEventNotFound))
		})
	})

	Describe("GetParticipants", func() {
		It("keeps insertion order", func() {
			base := time.Now()
			names := []string{"alice", "bob", "charlie"}
			for i, name := range names {
				p := &eventDatamodel.Participant{
					ID:          name,
					EventID:     "event-1",
					DisplayName: name,
					CreatedAt:   base.Add(time.Duration(i) * time.Second),
				}
				Expect(repo.AddParticipant(p)).To(Succeed())
			}

			participants, err := repo.GetParticipants("event-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(participants).To(HaveLen(3))
			for i, name := range names {
				Expect(participants[i].ID).To(Equal(name))
			}
		})

		It("returns an empty roster for an event without participants", func() {
			participants, err := repo.GetParticipants("event-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(participants).To(BeEmpty())
		})
	})
})
