package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)

	mux.HandleFunc("POST /v1/venues", handler.CreateVenue)
	mux.HandleFunc("GET /v1/venues", handler.ListVenues)
	mux.HandleFunc("GET /v1/venues/regions", handler.ListVenueRegions)

	mux.HandleFunc("POST /v1/match-posts", handler.CreateMatchPost)
	mux.HandleFunc("GET /v1/match-posts", handler.ListMatchPosts)
	mux.HandleFunc("GET /v1/match-posts/{postID}", handler.GetMatchPost)
	mux.HandleFunc("POST /v1/match-posts/{postID}/challenges", handler.CreateChallenge)

	mux.HandleFunc("POST /v1/challenges/{challengeID}/accept", handler.AcceptChallenge)

	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/backfill-venue-coordinates",
		RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBackfillVenueCoordinatesJob)))
}
