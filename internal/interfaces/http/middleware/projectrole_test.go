package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubAccessResolver struct {
	known map[uuid.UUID]project.RoleSet
}

func (s *stubAccessResolver) ResolveAccess(_ context.Context, projectID, _ uuid.UUID) (project.RoleSet, error) {
	roles, ok := s.known[projectID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return roles, nil
}

func gateTestRouter(resolver ProjectAccessResolver, superuser bool, allowed ...project.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/projects/:projectID/records",
		func(c *gin.Context) {
			c.Set(JWTUserIDKey, uuid.New().String())
			c.Set(JWTSuperuserKey, superuser)
		},
		RequireProjectRole(resolver, DefaultProjectRoleConfig(), allowed...),
		func(c *gin.Context) {
			id, ok := GetProjectID(c)
			if !ok {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, gin.H{"project_id": id.String()})
		},
	)
	return r
}

func doGateRequest(t *testing.T, r *gin.Engine, projectID string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID+"/records", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireProjectRole_AllowsMatchingRole(t *testing.T) {
	projectID := uuid.New()
	resolver := &stubAccessResolver{known: map[uuid.UUID]project.RoleSet{
		projectID: project.NewRoleSet(project.RoleUser),
	}}
	r := gateTestRouter(resolver, false, project.RoleAdmin, project.RoleUser)

	w := doGateRequest(t, r, projectID.String())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireProjectRole_DeniesMemberWithoutRole(t *testing.T) {
	projectID := uuid.New()
	resolver := &stubAccessResolver{known: map[uuid.UUID]project.RoleSet{
		projectID: project.NewRoleSet(project.RoleUser),
	}}
	r := gateTestRouter(resolver, false, project.RoleAdmin)

	w := doGateRequest(t, r, projectID.String())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireProjectRole_AdminPassesEveryGate(t *testing.T) {
	projectID := uuid.New()
	resolver := &stubAccessResolver{known: map[uuid.UUID]project.RoleSet{
		projectID: project.NewRoleSet(project.RoleAdmin),
	}}
	r := gateTestRouter(resolver, false, project.RoleRetention)

	w := doGateRequest(t, r, projectID.String())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireProjectRole_SuperuserBypassesMembership(t *testing.T) {
	projectID := uuid.New()
	resolver := &stubAccessResolver{known: map[uuid.UUID]project.RoleSet{
		projectID: project.NewRoleSet(),
	}}
	r := gateTestRouter(resolver, true, project.RoleAdmin)

	w := doGateRequest(t, r, projectID.String())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireProjectRole_EnrichesRequestContext(t *testing.T) {
	projectID := uuid.New()
	resolver := &stubAccessResolver{known: map[uuid.UUID]project.RoleSet{
		projectID: project.NewRoleSet(project.RoleUser),
	}}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	var scopedID string
	r.GET("/projects/:projectID/records",
		func(c *gin.Context) {
			c.Set(JWTUserIDKey, uuid.New().String())
		},
		RequireProjectRole(resolver, DefaultProjectRoleConfig()),
		func(c *gin.Context) {
			scopedID = logger.GetProjectID(c.Request.Context())
			c.Status(http.StatusOK)
		},
	)

	w := doGateRequest(t, r, projectID.String())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, projectID.String(), scopedID)
}

func TestRequireProjectRole_NonexistentProjectIs404(t *testing.T) {
	resolver := &stubAccessResolver{known: map[uuid.UUID]project.RoleSet{}}
	r := gateTestRouter(resolver, false, project.RoleAdmin)

	w := doGateRequest(t, r, uuid.New().String())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireProjectRole_NonMemberGetsSame404(t *testing.T) {
	projectID := uuid.New()
	resolver := &stubAccessResolver{known: map[uuid.UUID]project.RoleSet{
		projectID: project.NewRoleSet(),
	}}
	r := gateTestRouter(resolver, false, project.RoleAdmin)

	existing := doGateRequest(t, r, projectID.String())
	missing := doGateRequest(t, r, uuid.New().String())

	assert.Equal(t, http.StatusNotFound, existing.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, missing.Body.String(), existing.Body.String())
}

func TestRequireProjectRole_InvalidProjectID(t *testing.T) {
	resolver := &stubAccessResolver{known: map[uuid.UUID]project.RoleSet{}}
	r := gateTestRouter(resolver, false, project.RoleAdmin)

	w := doGateRequest(t, r, "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
