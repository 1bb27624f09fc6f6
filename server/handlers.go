package server

import (
	"github.com/gin-gonic/gin"
	"github.com/newsdeck/newsdeck/model"
	"github.com/newsdeck/newsdeck/server/api"
)

// APIHandler is the universal handler for the action-dispatch endpoint.
// Every operation is keyed by the "action" field of the request.
func (s *Server) APIHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := extractParams(c)

		switch p.str("action") {
		case "get_articles":
			s.getArticles(c, p)
		case "get_categories":
			s.getCategories(c, p)
		case "update_category_preferences":
			s.updateCategoryPreferences(c, p)
		case "add_custom_category":
			s.addCustomCategory(c, p)
		case "register":
			s.register(c, p)
		case "login":
			s.login(c, p)
		case "logout":
			s.logout(c)
		case "get_user_preferences":
			s.getUserPreferences(c)
		case "save_article_history":
			s.saveArticleHistory(c, p)
		case "get_article_history":
			s.getArticleHistory(c, p)
		case "":
			respondError(c, api.Validationf("no action specified"))
		default:
			respondError(c, api.Validationf("unknown action %q", p.str("action")))
		}
	}
}

func (s *Server) getArticles(c *gin.Context, p params) {
	identity := identityFrom(c)

	query := model.FeedQuery{ForTopPage: p.boolVal("for_top_page")}
	// A zero category id means "no filter", matching the legacy client
	// which omits the field or sends 0.
	if id, ok := p.uintVal("category_id"); ok && id > 0 {
		query.CategoryID = &id
	}
	if limit, ok := p.intVal("limit"); ok {
		query.Limit = limit
	}
	if offset, ok := p.intVal("offset"); ok {
		query.Offset = offset
	}

	page, err := api.GetFeed(s.DB, identity.UserID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"articles":    page.Articles,
		"total_count": page.TotalCount,
		"has_more":    page.HasMore,
	})
}

func (s *Server) getCategories(c *gin.Context, p params) {
	identity := identityFrom(c)

	categories, custom, err := api.GetCategories(s.DB, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"categories":        categories,
		"custom_categories": custom,
	})
}

func (s *Server) updateCategoryPreferences(c *gin.Context, p params) {
	identity := identityFrom(c)

	categoryID, ok := p.uintVal("category_id")
	if !ok || !p.has("is_visible") {
		respondError(c, api.Validationf("category_id and is_visible are required"))
		return
	}

	var displayOrder *int
	if order, ok := p.intVal("display_order"); ok {
		displayOrder = &order
	}

	if err := api.SetVisibility(s.DB, identity.UserID, categoryID, p.boolVal("is_visible"), displayOrder); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func (s *Server) addCustomCategory(c *gin.Context, p params) {
	identity := identityFrom(c)

	if !p.has("name") {
		respondError(c, api.Validationf("name is required"))
		return
	}

	category, err := api.AddCustomCategory(s.DB, identity.UserID, p.str("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"category": category})
}

func (s *Server) register(c *gin.Context, p params) {
	identity := identityFrom(c)

	// Upgrade the guest the middleware resolved, not whatever the raw
	// cookie claims: a stale cookie has already been replaced by a fresh
	// guest at this point.
	rc := api.RequestContext{}
	if identity.IsGuest {
		rc.GuestCookie = identity.UserID
	}

	input := api.RegisterInput{
		Username: p.str("username"),
		Password: p.str("password"),
		Email:    p.str("email"),
	}
	result, err := api.Register(c.Request.Context(), s.DB, s.Sessions, rc, input)
	if err != nil {
		respondError(c, err)
		return
	}
	applyCookies(c, result.SetCookies)
	respondOK(c, gin.H{"message": "account registered"})
}

func (s *Server) login(c *gin.Context, p params) {
	result, err := api.Login(c.Request.Context(), s.DB, s.Sessions, p.str("username"), p.str("password"))
	if err != nil {
		respondError(c, err)
		return
	}
	applyCookies(c, result.SetCookies)
	respondOK(c, gin.H{"message": "logged in"})
}

func (s *Server) logout(c *gin.Context) {
	rc := requestContextFrom(c)

	identity, err := api.Logout(c.Request.Context(), s.DB, s.Sessions, rc)
	if err != nil {
		respondError(c, err)
		return
	}
	applyCookies(c, identity.SetCookies)
	respondOK(c, gin.H{"message": "logged out"})
}

func (s *Server) getUserPreferences(c *gin.Context) {
	identity := identityFrom(c)

	categories, custom, err := api.GetCategories(s.DB, identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Guests are presented without a username, same as the legacy
	// behavior where only logged-in sessions carried one.
	user := model.UserView{IsGuest: identity.IsGuest}
	if !identity.IsGuest {
		user.Username = identity.Username
	}

	respondOK(c, gin.H{
		"user":              user,
		"categories":        categories,
		"custom_categories": custom,
	})
}

func (s *Server) saveArticleHistory(c *gin.Context, p params) {
	identity := identityFrom(c)

	articleID, ok := p.uintVal("article_id")
	if !ok {
		respondError(c, api.Validationf("article_id is required"))
		return
	}

	if err := api.RecordView(s.DB, identity.UserID, articleID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func (s *Server) getArticleHistory(c *gin.Context, p params) {
	identity := identityFrom(c)

	limit, _ := p.intVal("limit")
	history, err := api.GetHistory(s.DB, identity.UserID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"history": history})
}
