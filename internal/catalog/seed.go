package catalog

import (
	"context"
	"fmt"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"golang.org/x/sync/errgroup"

	"github.com/unera-social/unera-tui/pkg/models"
)

// seedArticle bodies are authored as HTML, the format the platform's
// help CMS produces. They are converted to markdown once at seed time
// so the detail view can render them with glamour.
type seedArticle struct {
	title    string
	category models.Category
	html     string
}

var seedArticles = []seedArticle{
	{
		title:    "Creating your UNERA account",
		category: models.CategoryGettingStarted,
		html: `<h2>Welcome to UNERA</h2>
<p>Sign up with an email address and pick a display name. Your display name is what friends see on your posts and stories.</p>
<ul><li>Choose a name you are comfortable sharing.</li><li>You can change it later from account settings.</li></ul>`,
	},
	{
		title:    "Setting up your profile",
		category: models.CategoryGettingStarted,
		html: `<h2>Your profile</h2>
<p>Add a profile picture and a short bio. Profiles with pictures get noticed faster in the reel and in group discussions.</p>`,
	},
	{
		title:    "Finding friends on UNERA",
		category: models.CategoryGettingStarted,
		html: `<p>Use the search bar to find people by name. Following someone adds their posts and stories to your feed.</p>`,
	},
	{
		title:    "Changing your password",
		category: models.CategoryAccount,
		html: `<p>Open <strong>Settings &gt; Account &gt; Password</strong>. You will be asked for your current password before choosing a new one.</p>`,
	},
	{
		title:    "Deactivating or deleting your account",
		category: models.CategoryAccount,
		html: `<p>Deactivation hides your profile and can be undone by logging back in. Deletion is permanent after a 30 day grace period.</p>`,
	},
	{
		title:    "Who can see my posts?",
		category: models.CategoryPrivacy,
		html: `<h2>Audience controls</h2>
<p>Every post has an audience selector: <em>Everyone</em>, <em>Followers</em>, or <em>Only me</em>. Stories are always follower-only.</p>`,
	},
	{
		title:    "Blocking and reporting",
		category: models.CategoryPrivacy,
		html: `<p>Blocking removes someone from your followers and hides your profile from them. Reports are reviewed by the safety team; the reported person is not told who filed the report.</p>`,
	},
	{
		title:    "Using UNERA Groups",
		category: models.CategoryGroups,
		html: `<h2>Groups</h2>
<p>Groups are shared spaces around a topic. Join public groups directly, or request access to private ones.</p>
<p>Group admins can pin posts, approve members, and set posting rules.</p>`,
	},
	{
		title:    "Posting a story",
		category: models.CategoryStories,
		html: `<h2>Stories</h2>
<p>Stories are short posts that appear in the reel at the top of the feed. A story can be a typed message over a colored background, a photo, or a video clip.</p>
<p>You can add background music from the song catalog and choose where in the track playback starts.</p>`,
	},
	{
		title:    "Replying to a story",
		category: models.CategoryStories,
		html: `<p>While viewing a story, type in the reply box at the bottom. The story pauses while you type and resumes when you send or clear your reply. Replies go to the author as a direct message.</p>`,
	},
	{
		title:    "The app feels slow",
		category: models.CategoryTroubleshoot,
		html: `<p>Most slowness comes from a weak connection. Media in stories is loaded on demand; on a poor link, previews may take a moment to appear.</p>`,
	},
	{
		title:    "I can't play story audio",
		category: models.CategoryTroubleshoot,
		html: `<p>Some platforms block automatic audio playback until you interact with the app. Tap the story once and playback will start. Muted videos play regardless.</p>`,
	},
}

var seedSongs = []models.Song{
	{
		ID:       "song-midnight-drive",
		Title:    "Midnight Drive",
		Artist:   "Nova Palette",
		AudioRef: "catalog://audio/midnight-drive.mp3",
		CoverRef: "catalog://covers/midnight-drive.jpg",
		Duration: "3:24",
		Album:    "City Lights",
		Stats:    models.SongStats{Plays: 128403, Downloads: 4821, Shares: 9302, Likes: 22018, ReelUses: 3127},
	},
	{
		ID:       "song-paper-planes",
		Title:    "Paper Planes Home",
		Artist:   "June Atlas",
		AudioRef: "catalog://audio/paper-planes-home.mp3",
		CoverRef: "catalog://covers/paper-planes-home.jpg",
		Duration: "2:58",
		Album:    "Field Notes",
		Stats:    models.SongStats{Plays: 84211, Downloads: 2190, Shares: 5408, Likes: 14992, ReelUses: 1876},
	},
	{
		ID:       "song-golden-hour",
		Title:    "Golden Hour",
		Artist:   "Mara & The Tide",
		AudioRef: "catalog://audio/golden-hour.mp3",
		CoverRef: "catalog://covers/golden-hour.jpg",
		Duration: "4:02",
		Album:    "Shorelines",
		Stats:    models.SongStats{Plays: 230577, Downloads: 11034, Shares: 18722, Likes: 60211, ReelUses: 8904},
	},
	{
		ID:       "song-static-bloom",
		Title:    "Static Bloom",
		Artist:   "Wires",
		AudioRef: "catalog://audio/static-bloom.mp3",
		CoverRef: "catalog://covers/static-bloom.jpg",
		Duration: "3:41",
		Album:    "Signal",
		Stats:    models.SongStats{Plays: 45120, Downloads: 980, Shares: 2241, Likes: 8033, ReelUses: 612},
	},
}

// SeedAll populates the article and song catalogs. The two catalogs are
// independent, so they seed in parallel.
func SeedAll(ctx context.Context, store *Store) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		return seedArticleCatalog(store)
	})
	g.Go(func() error {
		return seedSongCatalog(store)
	})

	return g.Wait()
}

func seedArticleCatalog(store *Store) error {
	conv := md.NewConverter("", true, nil)

	for _, seed := range seedArticles {
		content, err := conv.ConvertString(seed.html)
		if err != nil {
			return fmt.Errorf("converting article %q: %w", seed.title, err)
		}
		article := models.Article{
			Title:    seed.title,
			Category: seed.category,
			Content:  content,
		}
		if err := store.AddArticle(&article); err != nil {
			return err
		}
	}
	return nil
}

func seedSongCatalog(store *Store) error {
	for i := range seedSongs {
		song := seedSongs[i]
		if err := store.AddSong(&song); err != nil {
			return err
		}
	}
	return nil
}

// DemoUsers returns the mock accounts whose stories populate the demo
// session. Keyed by user ID.
func DemoUsers() map[string]models.User {
	return map[string]models.User{
		"user-aria":  {ID: "user-aria", Name: "Aria Chen", AvatarRef: "catalog://avatars/aria.jpg"},
		"user-ben":   {ID: "user-ben", Name: "Ben Okafor", AvatarRef: "catalog://avatars/ben.jpg"},
		"user-chloe": {ID: "user-chloe", Name: "Chloe Martin", AvatarRef: "catalog://avatars/chloe.jpg"},
	}
}

// SeedDemoStories fills the session story list with the demo dataset.
func SeedDemoStories(store *Store) error {
	now := time.Now()

	golden, err := store.SongByID("song-golden-hour")
	if err != nil {
		return err
	}

	stories := []models.Story{
		models.NewTextStory("user-aria", "Coffee first, everything else later ☕", "57", nil),
		models.NewImageStory("user-ben", "demo://media/trail-run.jpg", "Morning trail", golden.Attach(25)),
		models.NewVideoStory("user-chloe", "demo://media/street-food.mp4", "", nil),
	}
	ages := []time.Duration{45 * time.Minute, 2 * time.Hour, 5 * time.Hour}

	for i := range stories {
		stories[i].CreatedAt = now.Add(-ages[i])
		if err := store.AddStory(&stories[i]); err != nil {
			return err
		}
	}
	return nil
}
