package handler

import (
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/travel-tour-booking/internal/model"
)

func TestValidPassword(t *testing.T) {
    assert.True(t, validPassword("Tr4velling"))
    assert.False(t, validPassword("short1A"), "below eight characters")
    assert.False(t, validPassword("alllowercase1"), "no uppercase")
    assert.False(t, validPassword("NoDigitsHere"), "no digit")
}

func TestValidateGroup(t *testing.T) {
    base := func() participantReq {
        return participantReq{
            TourID: 3,
            Persons: []model.Person{
                {Name: "Ana", Category: model.PersonAdult},
                {Name: "Cleo", Category: model.PersonChild},
            },
            TotalPerson: 2,
        }
    }

    t.Run("valid group", func(t *testing.T) {
        req := base()
        assert.Empty(t, validateGroup(&req))
    })

    t.Run("missing tour", func(t *testing.T) {
        req := base()
        req.TourID = 0
        assert.NotEmpty(t, validateGroup(&req))
    })

    t.Run("empty persons", func(t *testing.T) {
        req := base()
        req.Persons = nil
        req.TotalPerson = 0
        assert.NotEmpty(t, validateGroup(&req))
    })

    t.Run("declared size mismatch", func(t *testing.T) {
        req := base()
        req.TotalPerson = 3
        assert.NotEmpty(t, validateGroup(&req))
    })

    t.Run("blank name", func(t *testing.T) {
        req := base()
        req.Persons[0].Name = "   "
        assert.NotEmpty(t, validateGroup(&req))
    })

    t.Run("unknown category", func(t *testing.T) {
        req := base()
        req.Persons[1].Category = "infant"
        assert.NotEmpty(t, validateGroup(&req))
    })
}

func TestPageParams(t *testing.T) {
    e := echo.New()

    ctx := func(query string) echo.Context {
        req := httptest.NewRequest("GET", "/?"+query, nil)
        return e.NewContext(req, httptest.NewRecorder())
    }

    page, limit, offset := pageParams(ctx(""))
    assert.Equal(t, 1, page)
    assert.Equal(t, 10, limit)
    assert.Equal(t, 0, offset)

    page, limit, offset = pageParams(ctx("page=3&limit=20"))
    assert.Equal(t, 3, page)
    assert.Equal(t, 20, limit)
    assert.Equal(t, 40, offset)

    _, limit, _ = pageParams(ctx("limit=1000"))
    assert.Equal(t, 10, limit, "limits are capped")
}

func TestNewPageMeta(t *testing.T) {
    m := newPageMeta(2, 10, 35)
    assert.Equal(t, pageMeta{Current: 2, Total: 35, TotalPages: 4}, m)

    m = newPageMeta(1, 10, 0)
    assert.Equal(t, 1, m.TotalPages, "empty result still reports one page")

    m = newPageMeta(1, 10, 30)
    assert.Equal(t, 3, m.TotalPages)
}

func TestScopeFor(t *testing.T) {
    e := echo.New()
    c := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())

    c.Set("role", "USER")
    assert.Equal(t, uint64(7), scopeFor(c, 7), "users are scoped to themselves")

    c.Set("role", "ADMIN")
    assert.Equal(t, uint64(0), scopeFor(c, 7), "admins are unscoped")
}
