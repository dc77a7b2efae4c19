// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"clipmark/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumCreators int
	NumClippers int
	NumClips    int
	ShouldClean bool
	// SkipBcrypt stores the password in plain text for dev fast mode.
	SkipBcrypt bool
}

// Seeder builds domain entities and persists them to the database.
// It is intended for development and testing only.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var (
	platforms = []models.Platform{
		models.PlatformInstagram,
		models.PlatformTiktok,
		models.PlatformYoutube,
		models.PlatformX,
	}

	niches = []models.Niche{
		models.NicheTravel,
		models.NicheFood,
		models.NicheEntertainment,
		models.NicheSport,
		models.NicheFashion,
		models.NicheTechnology,
		models.NicheGaming,
		models.NicheBeauty,
		models.NicheFitness,
		models.NicheOther,
	}

	clipTitles = []string{
		"Best moments compilation",
		"Stream highlight reel",
		"Reaction montage",
		"Top plays of the week",
		"Behind the scenes cut",
		"Fan favorite moments",
	}
)

// Run populates the database with test data.
func (s *Seeder) Run() error {
	log.Printf("Starting database seeding with %d creators, %d clippers, %d clips...",
		s.opts.NumCreators, s.opts.NumClippers, s.opts.NumClips)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	creators, err := s.seedCreators(s.opts.NumCreators)
	if err != nil {
		return fmt.Errorf("failed to create creators: %w", err)
	}
	log.Printf("%d creators created", len(creators))

	clippers, err := s.seedClippers(s.opts.NumClippers)
	if err != nil {
		return fmt.Errorf("failed to create clippers: %w", err)
	}
	log.Printf("%d clippers created", len(clippers))

	clips, err := s.seedClips(creators, clippers, s.opts.NumClips)
	if err != nil {
		return fmt.Errorf("failed to create clip submissions: %w", err)
	}
	log.Printf("%d clip submissions created", len(clips))

	log.Println("Database seeding completed successfully!")
	return nil
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE clip_submissions, portfolio_images, guidelines, creator_profiles, clipper_profiles, identities RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

func (s *Seeder) passwordHash() string {
	if s.opts.SkipBcrypt {
		return "password123"
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	return string(hashed)
}

// createIdentity persists the credential row backing a seeded profile and
// returns its id, which doubles as the profile id.
func (s *Seeder) createIdentity(email string) (string, error) {
	identity := models.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: s.passwordHash(),
	}
	if err := s.db.Create(&identity).Error; err != nil {
		return "", err
	}
	return identity.ID, nil
}

func (s *Seeder) spreadCreatedAt() time.Time {
	daysBack := s.rng.Intn(90)
	hoursBack := s.rng.Intn(24)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}

// CreateCreator constructs and persists a creator identity plus profile.
// Optional override functions may modify the generated profile before saving.
func (s *Seeder) CreateCreator(overrides ...func(*models.CreatorProfile)) (*models.CreatorProfile, error) {
	email := gofakeit.Email()
	id, err := s.createIdentity(email)
	if err != nil {
		return nil, err
	}

	profile := &models.CreatorProfile{
		ID:                id,
		FullName:          gofakeit.Name(),
		BrandName:         gofakeit.Company(),
		Email:             email,
		SocialMediaHandle: gofakeit.Username(),
		Platform:          platforms[s.rng.Intn(len(platforms))],
		Niche:             niches[s.rng.Intn(len(niches))],
		Country:           gofakeit.Country(),
		CreatedAt:         s.spreadCreatedAt(),
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := s.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateClipper constructs and persists a clipper identity plus profile.
func (s *Seeder) CreateClipper(overrides ...func(*models.ClipperProfile)) (*models.ClipperProfile, error) {
	email := gofakeit.Email()
	id, err := s.createIdentity(email)
	if err != nil {
		return nil, err
	}

	profile := &models.ClipperProfile{
		ID:                id,
		FullName:          gofakeit.Name(),
		BrandName:         gofakeit.Company(),
		Email:             email,
		SocialMediaHandle: gofakeit.Username(),
		Platform:          platforms[s.rng.Intn(len(platforms))],
		Niche:             niches[s.rng.Intn(len(niches))],
		Country:           gofakeit.Country(),
		FollowerCount:     int64(s.rng.Intn(2_000_000)),
		PricePerPost:      int64(s.rng.Intn(5000) + 50),
		CreatedAt:         s.spreadCreatedAt(),
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := s.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateClip constructs and persists a clip submission between the given parties.
func (s *Seeder) CreateClip(creator *models.CreatorProfile, clipper *models.ClipperProfile, overrides ...func(*models.ClipSubmission)) (*models.ClipSubmission, error) {
	id := uuid.NewString()
	statuses := []models.ClipStatus{
		models.ClipStatusPending,
		models.ClipStatusPending,
		models.ClipStatusApproved,
		models.ClipStatusRejected,
	}

	clip := &models.ClipSubmission{
		ID:          id,
		CreatorID:   creator.ID,
		ClipperID:   clipper.ID,
		Title:       clipTitles[s.rng.Intn(len(clipTitles))],
		Description: gofakeit.Sentence(12),
		ClipURL:     fmt.Sprintf("http://localhost:8080/media/clip-submissions/%s/%s-clip-demo.mp4", clipper.ID, id),
		Status:      statuses[s.rng.Intn(len(statuses))],
		CreatedAt:   s.spreadCreatedAt(),
	}

	if s.rng.Float32() < 0.5 {
		clip.ThumbnailURL = fmt.Sprintf("http://localhost:8080/media/clip-thumbnails/%s/%s-thumbnail-demo.png", clipper.ID, id)
	}

	for _, override := range overrides {
		override(clip)
	}

	if err := s.db.Create(clip).Error; err != nil {
		return nil, err
	}
	return clip, nil
}

// CreatePortfolioImage persists a portfolio image for the given clipper at the
// given position.
func (s *Seeder) CreatePortfolioImage(clipper *models.ClipperProfile, position int) (*models.PortfolioImage, error) {
	image := &models.PortfolioImage{
		ID:        uuid.NewString(),
		ClipperID: clipper.ID,
		ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Position:  position,
	}
	if err := s.db.Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// CreateGuideline persists a submission guideline for the given clipper.
func (s *Seeder) CreateGuideline(clipper *models.ClipperProfile, text string) (*models.Guideline, error) {
	guideline := &models.Guideline{
		ID:        uuid.NewString(),
		ClipperID: clipper.ID,
		Guideline: text,
	}
	if err := s.db.Create(guideline).Error; err != nil {
		return nil, err
	}
	return guideline, nil
}

func (s *Seeder) seedCreators(count int) ([]*models.CreatorProfile, error) {
	creators := make([]*models.CreatorProfile, 0, count)

	// Always include a known login for manual testing.
	if count > 0 {
		creator, err := s.CreateCreator(func(p *models.CreatorProfile) {
			p.FullName = "Demo Creator"
			p.BrandName = "Demo Studio"
		})
		if err == nil {
			creators = append(creators, creator)
		}
	}

	for i := len(creators); i < count; i++ {
		creator, err := s.CreateCreator()
		if err != nil {
			log.Printf("Failed to create creator: %v", err)
			continue
		}
		creators = append(creators, creator)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d creators...", i)
		}
	}
	return creators, nil
}

var guidelineTemplates = []string{
	"Clips must be at least 30 seconds long.",
	"No clickbait titles or misleading thumbnails.",
	"Always credit the original stream in the description.",
	"Vertical format only for short-form platforms.",
	"Keep intros under 3 seconds.",
	"No reuploads of previously submitted clips.",
}

func (s *Seeder) seedClippers(count int) ([]*models.ClipperProfile, error) {
	clippers := make([]*models.ClipperProfile, 0, count)

	for i := 0; i < count; i++ {
		clipper, err := s.CreateClipper()
		if err != nil {
			log.Printf("Failed to create clipper: %v", err)
			continue
		}
		clippers = append(clippers, clipper)

		numImages := s.rng.Intn(models.MaxPortfolioImages + 1)
		for pos := 0; pos < numImages; pos++ {
			if _, err := s.CreatePortfolioImage(clipper, pos); err != nil {
				return nil, err
			}
		}

		numGuidelines := s.rng.Intn(4)
		for g := 0; g < numGuidelines; g++ {
			text := guidelineTemplates[s.rng.Intn(len(guidelineTemplates))]
			if _, err := s.CreateGuideline(clipper, text); err != nil {
				return nil, err
			}
		}

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d clippers...", i)
		}
	}
	return clippers, nil
}

func (s *Seeder) seedClips(creators []*models.CreatorProfile, clippers []*models.ClipperProfile, count int) ([]*models.ClipSubmission, error) {
	if len(creators) == 0 || len(clippers) == 0 {
		return nil, nil
	}

	clips := make([]*models.ClipSubmission, 0, count)
	for i := 0; i < count; i++ {
		creator := creators[s.rng.Intn(len(creators))]
		clipper := clippers[s.rng.Intn(len(clippers))]

		clip, err := s.CreateClip(creator, clipper)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d clips...", i)
		}
	}
	return clips, nil
}
