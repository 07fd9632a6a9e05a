package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"xelar/internal/domain"
	"xelar/internal/repository"
)

// demoAccount pairs a seeded profile with its plaintext demo password.
type demoAccount struct {
	user     domain.User
	password string
}

func demoAccounts() []demoAccount {
	return []demoAccount{
		{
			user: domain.User{
				ID:          "kuny-user",
				Name:        "Kuny",
				Handle:      "@Kuny",
				Email:       "kuny@xelar.com",
				DateOfBirth: "1990-01-01",
				AvatarURL:   "https://picsum.photos/seed/kuny/200/200",
				BannerURL:   "https://picsum.photos/seed/kuny-banner/600/200",
				Role:        domain.RoleStudent,
				Bio:         "Just a mock user exploring the academic world on Xelar.",
				Followers:   137,
				Following:   42,
			},
			password: "kuny137%",
		},
		{
			user: domain.User{
				ID:          "current-user",
				Name:        "Dr. Alex Riley",
				Handle:      "@alexriley",
				Email:       "alex@xelar.com",
				DateOfBirth: "1985-05-15",
				AvatarURL:   "https://picsum.photos/seed/user/200/200",
				BannerURL:   "https://picsum.photos/seed/user-banner/600/200",
				Role:        domain.RoleProfessor,
				Bio:         "Professor of Computer Science at Xelar University. Fascinated by the intersection of AI and human creativity. #AI #CompSci",
				Followers:   1258,
				Following:   342,
			},
			password: "password123",
		},
	}
}

// SeedDemoAccounts inserts the demo accounts into an empty account store.
func SeedDemoAccounts(ctx context.Context, accounts repository.AccountRepository) error {
	for _, demo := range demoAccounts() {
		hash, err := bcrypt.GenerateFromPassword([]byte(demo.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash demo password: %w", err)
		}
		if err := accounts.Insert(ctx, &demo.user, string(hash)); err != nil {
			return fmt.Errorf("seed account %s: %w", demo.user.Handle, err)
		}
	}
	return nil
}

func contactUser(id, name, handle, seed string, role domain.UserRole) domain.User {
	return domain.User{
		ID:        id,
		Name:      name,
		Handle:    handle,
		AvatarURL: fmt.Sprintf("https://picsum.photos/seed/%s/200/200", seed),
		Role:      role,
	}
}

func seedContacts() []domain.ChatContact {
	return []domain.ChatContact{
		{ID: "contact-1", User: contactUser("user-1", "Dr. Emily Carter", "@emilycarter", "contact1", domain.RoleProfessor), Online: true},
		{ID: "contact-2", User: contactUser("user-2", "BenNet", "@bennet", "contact2", domain.RoleStudent), Online: false},
		{ID: "contact-3", User: contactUser("user-3", "Laura Chen", "@laurachen", "contact3", domain.RoleStudent), Online: true},
		{ID: "contact-4", User: contactUser("user-4", "Dr. Smith", "@dsmith", "contact4", domain.RoleProfessor), Online: false},
	}
}

func seedPosts() []domain.Post {
	carter := contactUser("user-1", "Dr. Emily Carter", "@emilycarter", "contact1", domain.RoleProfessor)
	carter.Email = "emily.carter@example.com"
	carter.DateOfBirth = "1980-01-01"
	carter.Followers = 5000
	carter.Following = 200

	bennet := contactUser("user-2", "BenNet", "@bennet", "contact2", domain.RoleStudent)
	bennet.Email = "bennet@example.com"
	bennet.DateOfBirth = "2001-05-10"
	bennet.Followers = 150
	bennet.Following = 250

	return []domain.Post{
		{
			ID:        "post-1",
			Author:    carter,
			Content:   "Just published a new paper on the applications of machine learning in astrophysics. It's been a long journey, but incredibly rewarding. Feedback is welcome! #ML #AstroPhysics",
			ImageURL:  "https://picsum.photos/seed/post1/600/400",
			Timestamp: "2h ago",
			Likes:     156,
			Comments:  23,
		},
		{
			ID:        "post-2",
			Author:    bennet,
			Content:   "Thrilled to announce I'll be presenting my research on graph neural networks at #ICLR2024! If you're attending, let's connect. #GNN #AI #Conference",
			Timestamp: "5h ago",
			Likes:     98,
			Comments:  12,
			IsLiked:   true,
		},
	}
}

func seedStories() []domain.Story {
	return []domain.Story{
		{ID: "1", User: contactUser("user-1", "Dr. Carter", "@emilycarter", "contact1", domain.RoleProfessor), ImageURL: "https://picsum.photos/seed/story1/200/300", Viewed: true},
		{ID: "2", User: contactUser("user-2", "BenNet", "@bennet", "contact2", domain.RoleStudent), ImageURL: "https://picsum.photos/seed/story2/200/300"},
		{ID: "3", User: contactUser("user-3", "Laura Chen", "@laurachen", "contact3", domain.RoleStudent), ImageURL: "https://picsum.photos/seed/story3/200/300"},
		{ID: "4", User: contactUser("user-4", "Dr. Smith", "@dsmith", "contact4", domain.RoleProfessor), ImageURL: "https://picsum.photos/seed/story4/200/300"},
	}
}
