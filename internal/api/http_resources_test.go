package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"church/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementPermissionsAndVisibility(t *testing.T) {
	s := newTestServer(t)
	_, memberToken := s.userWithToken("ruth@church.com", entity.UserRoleMember)
	_, leaderToken := s.userWithToken("pastor@church.com", entity.UserRoleLeader)

	body := gin.H{"title": "Sunday Service", "content": "Join us at 10am"}
	requireError(t, s.do(http.MethodPost, "/api/announcements", memberToken, body), http.StatusForbidden, ErrCodeForbidden)

	w := s.do(http.MethodPost, "/api/announcements", leaderToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeJSON[entity.Announcement](t, w)
	assert.Equal(t, "Test leader", created.Author)

	w = s.do(http.MethodGet, "/api/announcements", memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeJSON[entity.AnnouncementListResponse](t, w)
	require.Len(t, list.Announcements, 1)
	assert.Equal(t, created.ID, list.Announcements[0].ID)
	assert.Equal(t, "Sunday Service", list.Announcements[0].Title)
}

func TestAnnouncementsListedNewestFirst(t *testing.T) {
	s := newTestServer(t)
	_, token := s.userWithToken("pastor@church.com", entity.UserRoleLeader)

	var ids []uint
	for _, title := range []string{"first", "second", "third"} {
		w := s.do(http.MethodPost, "/api/announcements", token, gin.H{"title": title, "content": "..."})
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decodeJSON[entity.Announcement](t, w).ID)
	}

	list := decodeJSON[entity.AnnouncementListResponse](t, s.do(http.MethodGet, "/api/announcements", token, nil))
	require.Len(t, list.Announcements, 3)
	for i, a := range list.Announcements {
		assert.Equal(t, ids[len(ids)-1-i], a.ID)
	}
}

func TestAnnouncementSoftDelete(t *testing.T) {
	s := newTestServer(t)
	_, token := s.userWithToken("pastor@church.com", entity.UserRoleLeader)

	w := s.do(http.MethodPost, "/api/announcements", token, gin.H{"title": "Bake sale", "content": "Saturday"})
	require.Equal(t, http.StatusCreated, w.Code)
	path := "/api/announcements/" + itoa(decodeJSON[entity.Announcement](t, w).ID)

	w = s.do(http.MethodPut, path, token, gin.H{"title": "Bake sale (moved)", "content": "Sunday"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Bake sale (moved)", decodeJSON[entity.Announcement](t, w).Title)

	requireError(t, s.do(http.MethodPut, path, token, gin.H{"title": "  "}), http.StatusBadRequest, ErrCodeMissingField)

	w = s.do(http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Announcement deleted", decodeJSON[entity.MessageResponse](t, w).Message)

	requireError(t, s.do(http.MethodGet, path, token, nil), http.StatusNotFound, ErrCodeAnnouncementNotFound)
	requireError(t, s.do(http.MethodPut, path, token, gin.H{"title": "x", "content": "y"}), http.StatusNotFound, ErrCodeAnnouncementNotFound)
	requireError(t, s.do(http.MethodDelete, path, token, nil), http.StatusNotFound, ErrCodeAnnouncementNotFound)

	list := decodeJSON[entity.AnnouncementListResponse](t, s.do(http.MethodGet, "/api/announcements", token, nil))
	assert.Empty(t, list.Announcements)
}

func TestEventLifecycle(t *testing.T) {
	s := newTestServer(t)
	_, memberToken := s.userWithToken("ruth@church.com", entity.UserRoleMember)
	_, leaderToken := s.userWithToken("pastor@church.com", entity.UserRoleLeader)

	event := gin.H{
		"title":       "Youth Retreat",
		"description": "Weekend retreat",
		"event_date":  "2024-02-15T09:00:00",
		"location":    "Camp Wilderness",
	}
	requireError(t, s.do(http.MethodPost, "/api/events", memberToken, event), http.StatusForbidden, ErrCodeForbidden)

	w := s.do(http.MethodPost, "/api/events", leaderToken, event)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeJSON[entity.Event](t, w)
	assert.Equal(t, 2024, created.EventDate.Year())
	assert.Equal(t, "Test leader", created.Organizer)

	later := gin.H{"title": "Picnic", "description": "Lunch", "event_date": "2024-06-01", "location": "Park"}
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/events", leaderToken, later).Code)

	list := decodeJSON[entity.EventListResponse](t, s.do(http.MethodGet, "/api/events", memberToken, nil))
	require.Len(t, list.Events, 2)
	assert.Equal(t, "Picnic", list.Events[0].Title)

	bad := gin.H{"title": "x", "description": "y", "event_date": "soon", "location": "z"}
	requireError(t, s.do(http.MethodPost, "/api/events", leaderToken, bad), http.StatusBadRequest, ErrCodeInvalidRequest)

	path := "/api/events/" + itoa(created.ID)
	event["location"] = "Camp Hope"
	w = s.do(http.MethodPut, path, leaderToken, event)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Camp Hope", decodeJSON[entity.Event](t, w).Location)

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, path, leaderToken, nil).Code)
	requireError(t, s.do(http.MethodGet, path, memberToken, nil), http.StatusNotFound, ErrCodeEventNotFound)
	requireError(t, s.do(http.MethodDelete, path, leaderToken, nil), http.StatusNotFound, ErrCodeEventNotFound)
	requireError(t, s.do(http.MethodGet, "/api/events/abc", memberToken, nil), http.StatusNotFound, ErrCodeEventNotFound)
}

func TestDepartmentDeleteBlockedWhileMembersReferenceIt(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.userWithToken("admin@church.com", entity.UserRoleAdmin)
	leader, leaderToken := s.userWithToken("pastor@church.com", entity.UserRoleLeader)

	dept := gin.H{"name": "Worship Team", "description": "Music ministry", "leader_id": leader.ID}
	requireError(t, s.do(http.MethodPost, "/api/departments", leaderToken, dept), http.StatusForbidden, ErrCodeForbidden)

	w := s.do(http.MethodPost, "/api/departments", adminToken, dept)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeJSON[entity.Department](t, w)
	require.NotNil(t, created.LeaderID)
	assert.Equal(t, leader.ID, *created.LeaderID)

	requireError(t, s.do(http.MethodPost, "/api/departments", adminToken, gin.H{"name": "Ghosts", "description": "?", "leader_id": 999}),
		http.StatusBadRequest, ErrCodeInvalidReference)

	w = s.do(http.MethodPost, "/auth/register", adminToken, gin.H{
		"email": "singer@church.com", "first_name": "Sam", "last_name": "Singer",
		"password": "sing-along", "department_id": created.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	singer := decodeJSON[entity.UserSummary](t, w)
	require.NotNil(t, singer.Department)
	assert.Equal(t, "Worship Team", *singer.Department)

	list := decodeJSON[entity.DepartmentListResponse](t, s.do(http.MethodGet, "/api/departments", leaderToken, nil))
	require.Len(t, list.Departments, 1)
	assert.EqualValues(t, 1, list.Departments[0].MemberCount)

	path := "/api/departments/" + itoa(created.ID)
	requireError(t, s.do(http.MethodDelete, path, adminToken, nil), http.StatusBadRequest, ErrCodeDepartmentInUse)

	w = s.do(http.MethodPut, "/api/members/"+itoa(singer.ID), adminToken, gin.H{
		"first_name": "Sam", "last_name": "Singer", "role": entity.UserRoleMember,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, decodeJSON[entity.UserSummary](t, w).DepartmentID)

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, path, adminToken, nil).Code)
	requireError(t, s.do(http.MethodDelete, path, adminToken, nil), http.StatusNotFound, ErrCodeDepartmentNotFound)
}

func TestDepartmentUpdateReplacesLeader(t *testing.T) {
	s := newTestServer(t)
	admin, adminToken := s.userWithToken("admin@church.com", entity.UserRoleAdmin)

	w := s.do(http.MethodPost, "/api/departments", adminToken, gin.H{"name": "Youth", "description": "Teens", "leader_id": admin.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	path := "/api/departments/" + itoa(decodeJSON[entity.Department](t, w).ID)

	w = s.do(http.MethodPut, path, adminToken, gin.H{"name": "Youth Ministry", "description": "Teens and young adults"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeJSON[entity.Department](t, w)
	assert.Equal(t, "Youth Ministry", updated.Name)
	assert.Nil(t, updated.LeaderID)

	requireError(t, s.do(http.MethodPut, "/api/departments/404", adminToken, gin.H{"name": "a", "description": "b"}),
		http.StatusNotFound, ErrCodeDepartmentNotFound)
}

func TestSermonLifecycle(t *testing.T) {
	s := newTestServer(t)
	_, memberToken := s.userWithToken("ruth@church.com", entity.UserRoleMember)
	_, leaderToken := s.userWithToken("pastor@church.com", entity.UserRoleLeader)

	older := gin.H{"title": "Walking by Faith", "speaker": "Elder Smith", "sermon_date": "2024-01-07"}
	newer := gin.H{
		"title": "The Love of Christ", "speaker": "Pastor Johnson", "scripture": "John 3:16",
		"audio_url": "https://example.org/a.mp3", "sermon_date": "2024-01-14",
	}
	requireError(t, s.do(http.MethodPost, "/api/sermons", memberToken, older), http.StatusForbidden, ErrCodeForbidden)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/sermons", leaderToken, older).Code)

	w := s.do(http.MethodPost, "/api/sermons", leaderToken, newer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeJSON[entity.Sermon](t, w)
	assert.Equal(t, "2024-01-14", created.SermonDate)
	require.NotNil(t, created.Scripture)

	list := decodeJSON[entity.SermonListResponse](t, s.do(http.MethodGet, "/api/sermons", memberToken, nil))
	require.Len(t, list.Sermons, 2)
	assert.Equal(t, created.ID, list.Sermons[0].ID)
	assert.Nil(t, list.Sermons[1].AudioURL)

	badURL := gin.H{"title": "x", "speaker": "y", "audio_url": "not a url", "sermon_date": "2024-01-01"}
	requireError(t, s.do(http.MethodPost, "/api/sermons", leaderToken, badURL), http.StatusBadRequest, ErrCodeInvalidRequest)
	badDate := gin.H{"title": "x", "speaker": "y", "sermon_date": "14/01/2024"}
	requireError(t, s.do(http.MethodPost, "/api/sermons", leaderToken, badDate), http.StatusBadRequest, ErrCodeInvalidRequest)

	path := "/api/sermons/" + itoa(created.ID)
	w = s.do(http.MethodPut, path, leaderToken, gin.H{"title": "The Love of Christ", "speaker": "Pastor Johnson", "sermon_date": "2024-01-21"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeJSON[entity.Sermon](t, w)
	assert.Nil(t, updated.Scripture)
	assert.Nil(t, updated.AudioURL)
	assert.Equal(t, "2024-01-21", updated.SermonDate)

	w = s.do(http.MethodPut, path, leaderToken, gin.H{"title": "Evening Prayer", "speaker": "Pastor Johnson", "sermon_date": "2024-05-05T23:30:00-05:00"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2024-05-05", decodeJSON[entity.Sermon](t, w).SermonDate)

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, path, leaderToken, nil).Code)
	requireError(t, s.do(http.MethodDelete, path, leaderToken, nil), http.StatusNotFound, ErrCodeSermonNotFound)
}

func uploadRequest(t *testing.T, path, kind, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if kind != "" {
		require.NoError(t, mw.WriteField("kind", kind))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSermonMediaUpload(t *testing.T) {
	s := newTestServer(t)
	_, memberToken := s.userWithToken("ruth@church.com", entity.UserRoleMember)
	_, leaderToken := s.userWithToken("pastor@church.com", entity.UserRoleLeader)

	w := s.do(http.MethodPost, "/api/sermons", leaderToken, gin.H{"title": "Grace", "speaker": "Pastor Johnson", "sermon_date": "2024-01-14"})
	require.Equal(t, http.StatusCreated, w.Code)
	path := "/api/sermons/" + itoa(decodeJSON[entity.Sermon](t, w).ID) + "/media"
	audio := []byte("ID3\x03fake-audio-bytes")

	requireError(t, s.send(uploadRequest(t, path, "audio", "grace.mp3", audio), memberToken), http.StatusForbidden, ErrCodeForbidden)
	requireError(t, s.send(uploadRequest(t, path, "slides", "grace.pdf", audio), leaderToken), http.StatusBadRequest, ErrCodeUnsupportedMedia)
	requireError(t, s.send(uploadRequest(t, path, "audio", "", nil), leaderToken), http.StatusBadRequest, ErrCodeMissingField)
	requireError(t, s.send(uploadRequest(t, "/api/sermons/999/media", "audio", "grace.mp3", audio), leaderToken), http.StatusNotFound, ErrCodeSermonNotFound)

	w = s.send(uploadRequest(t, path, "audio", "grace.mp3", audio), leaderToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sermon := decodeJSON[entity.Sermon](t, w)
	require.NotNil(t, sermon.AudioURL)
	assert.True(t, strings.HasPrefix(*sermon.AudioURL, "/files/sermons/"), *sermon.AudioURL)
	assert.Nil(t, sermon.VideoURL)

	w = s.send(httptest.NewRequest(http.MethodGet, *sermon.AudioURL, nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, audio, w.Body.Bytes())

	tooLarge := bytes.Repeat([]byte{0}, 3<<20)
	requireError(t, s.send(uploadRequest(t, path, "video", "big.mp4", tooLarge), leaderToken), http.StatusRequestEntityTooLarge, ErrCodeUploadTooLarge)
}

func TestMembersDirectory(t *testing.T) {
	s := newTestServer(t)
	admin, adminToken := s.userWithToken("admin@church.com", entity.UserRoleAdmin)
	_, leaderToken := s.userWithToken("pastor@church.com", entity.UserRoleLeader)
	s.createUser("ruth@church.com", entity.UserRoleMember)
	gone := s.createUser("gone@church.com", entity.UserRoleMember)

	requireError(t, s.do(http.MethodGet, "/api/members", leaderToken, nil), http.StatusForbidden, ErrCodeForbidden)
	requireError(t, s.do(http.MethodDelete, "/api/members/"+itoa(admin.ID), adminToken, nil), http.StatusBadRequest, ErrCodeCannotDeleteSelf)

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/members/"+itoa(gone.ID), adminToken, nil).Code)
	requireError(t, s.do(http.MethodDelete, "/api/members/"+itoa(gone.ID), adminToken, nil), http.StatusNotFound, ErrCodeUserNotFound)

	list := decodeJSON[entity.MemberListResponse](t, s.do(http.MethodGet, "/api/members", adminToken, nil))
	assert.Len(t, list.Members, 3)
	require.NotNil(t, list.Meta)
	assert.EqualValues(t, 3, list.Meta.Total)
	assert.EqualValues(t, 20, list.Meta.PageSize)
	assert.Equal(t, admin.ID, list.Members[0].ID)

	list = decodeJSON[entity.MemberListResponse](t, s.do(http.MethodGet, "/api/members?include_inactive=true&role=member", adminToken, nil))
	assert.Len(t, list.Members, 2)

	list = decodeJSON[entity.MemberListResponse](t, s.do(http.MethodGet, "/api/members?keyword=PASTOR", adminToken, nil))
	require.Len(t, list.Members, 1)
	assert.Equal(t, "pastor@church.com", list.Members[0].Email)

	list = decodeJSON[entity.MemberListResponse](t, s.do(http.MethodGet, "/api/members?page=2&page_size=2", adminToken, nil))
	assert.Len(t, list.Members, 1)
	assert.EqualValues(t, 2, list.Meta.Page)

	w := s.do(http.MethodGet, "/api/members?page=9223372036854775807&page_size=100", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list = decodeJSON[entity.MemberListResponse](t, w)
	assert.Empty(t, list.Members)
	assert.EqualValues(t, maxMemberPage, list.Meta.Page)
	assert.EqualValues(t, 3, list.Meta.Total)

	requireError(t, s.do(http.MethodGet, "/api/members?role=deacon", adminToken, nil), http.StatusBadRequest, ErrCodeInvalidRequest)

	w = s.do(http.MethodGet, "/api/members/"+itoa(gone.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeJSON[entity.UserSummary](t, w).IsActive)
	requireError(t, s.do(http.MethodPut, "/api/members/999", adminToken, gin.H{"first_name": "a", "last_name": "b", "role": "member"}),
		http.StatusNotFound, ErrCodeUserNotFound)
}

func TestHealthMetricsAndRequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	assert.Equal(t, "trace-123", s.send(req, "").Header().Get(RequestIDHeader))

	s.do(http.MethodPost, "/auth/login", "", gin.H{"email": "nobody@church.com", "password": "whatever"})

	w = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/health"`)
	assert.Contains(t, w.Body.String(), `church_login_attempts_total{outcome="failure"} 1`)
}
