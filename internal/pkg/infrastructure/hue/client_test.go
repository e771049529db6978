package hue

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"
	"golang.org/x/oauth2"
)

func TestFetchAllReturnsEveryCollection(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Header.Get("Authorization"), "Bearer access-token")

		if strings.HasPrefix(r.URL.Path, "/route/clip/v2/") {
			is.Equal(r.Header.Get("hue-application-key"), "app-key")
		}

		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/bridge/app-key/lights":
			w.Write([]byte(lightsJson))
		case "/bridge/app-key/sensors":
			w.Write([]byte(sensorsJson))
		case "/bridge/app-key/groups":
			w.Write([]byte(groupsJson))
		case "/route/clip/v2/resource/room":
			w.Write([]byte(roomsJson))
		case "/route/clip/v2/resource/device":
			w.Write([]byte(devicesJson))
		case "/route/clip/v2/resource/contact":
			w.Write([]byte(contactsJson))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := testClient(server.URL)

	snapshot, err := c.FetchAll(context.Background(), Credentials{AccessToken: "access-token", ApplicationKey: "app-key"})
	is.NoErr(err)

	is.Equal(len(snapshot.Lights), 2)
	is.Equal(len(snapshot.Sensors), 5)
	is.Equal(len(snapshot.Groups), 2)
	is.Equal(len(snapshot.Rooms), 1)
	is.Equal(len(snapshot.Devices), 2)
	is.Equal(len(snapshot.Contacts), 1)
	is.Equal(snapshot.Sensors["5"].State.LastUpdated, "2024-01-01T10:03:00")
}

func TestThatResourceFailuresDegradeToEmptyCollections(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bridge/app-key/lights":
			w.Write([]byte(lightsJson))
		case "/bridge/app-key/sensors":
			w.Write([]byte(sensorsJson))
		case "/bridge/app-key/groups":
			w.Write([]byte(groupsJson))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	snapshot, err := testClient(server.URL).FetchAll(context.Background(), Credentials{AccessToken: "t", ApplicationKey: "app-key"})
	is.NoErr(err)

	is.Equal(len(snapshot.Lights), 2)
	is.Equal(len(snapshot.Rooms), 0)
	is.Equal(len(snapshot.Devices), 0)
	is.Equal(len(snapshot.Contacts), 0)
}

func TestThatLegacyFailureAbortsFetch(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bridge/app-key/sensors" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchAll(context.Background(), Credentials{AccessToken: "t", ApplicationKey: "app-key"})
	is.True(errors.Is(err, ErrVendorUnavailable))

	var statusErr *StatusError
	is.True(errors.As(err, &statusErr))
	is.Equal(statusErr.StatusCode, http.StatusBadGateway)
}

func TestThatUndecodableBodyIsVendorUnavailable(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"error":{"type":1,"description":"unauthorized user"}}]`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchLights(context.Background(), Credentials{AccessToken: "t", ApplicationKey: "app-key"})
	is.True(errors.Is(err, ErrVendorUnavailable))
}

func TestRefreshTokenUsesBasicAuth(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		is.True(ok)
		is.Equal(user, "client-id")
		is.Equal(pass, "client-secret")

		r.ParseForm()
		is.Equal(r.Form.Get("grant_type"), "refresh_token")
		is.Equal(r.Form.Get("refresh_token"), "old-refresh")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"new-access","refresh_token":"new-refresh","token_type":"bearer","expires_in":604800}`))
	}))
	defer server.Close()

	c := testClient(server.URL)

	token, err := c.RefreshToken(context.Background(), "old-refresh")
	is.NoErr(err)
	is.Equal(token.AccessToken, "new-access")
	is.Equal(token.RefreshToken, "new-refresh")
	is.True(!token.Expiry.IsZero())
}

func TestRefreshTokenFailureIsRetrieveError(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).RefreshToken(context.Background(), "expired")
	is.True(err != nil)

	var retrieveErr *oauth2.RetrieveError
	is.True(errors.As(err, &retrieveErr))
}

func testClient(baseURL string) *Client {
	return NewClientWithHTTPClient(Config{
		LegacyURL:    baseURL + "/bridge",
		ResourceURL:  baseURL + "/route/clip/v2",
		TokenURL:     baseURL + "/oauth2/token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, http.DefaultClient)
}

const lightsJson string = `{
	"1": {"name": "Kitchen ceiling", "type": "Extended color light", "modelid": "LCT015", "uniqueid": "00:17:88:01:aa:aa:aa:aa-0b",
		"state": {"on": true, "bri": 200, "hue": 8000, "sat": 140, "ct": 366, "reachable": true}},
	"2": {"name": "Hall lamp", "type": "Dimmable light", "modelid": "LWB010", "uniqueid": "00:17:88:01:bb:bb:bb:bb-0b",
		"state": {"on": false, "bri": 1, "reachable": true}}
}`

const sensorsJson string = `{
	"1": {"name": "Daylight", "type": "Daylight", "modelid": "PHDL00", "state": {"daylight": true, "lastupdated": "2024-01-01T07:00:00"}, "config": {"on": true}},
	"5": {"name": "Kitchen motion", "type": "ZLLPresence", "modelid": "SML001", "uniqueid": "00:17:88:01:cc:cc:cc:cc-02-0406",
		"state": {"presence": true, "lastupdated": "2024-01-01T10:03:00"}, "config": {"on": true, "battery": 87, "reachable": true}},
	"6": {"name": "Hue temperature sensor 1", "type": "ZLLTemperature", "modelid": "SML001", "uniqueid": "00:17:88:01:cc:cc:cc:cc-02-0402",
		"state": {"temperature": 2134, "lastupdated": "2024-01-01T10:01:00"}, "config": {"on": true, "battery": 87}},
	"7": {"name": "Hue ambient light sensor 1", "type": "ZLLLightLevel", "modelid": "SML001", "uniqueid": "00:17:88:01:cc:cc:cc:cc-02-0400",
		"state": {"lightlevel": 12000, "dark": false, "daylight": true, "lastupdated": "2024-01-01T10:02:00"}, "config": {"on": true, "battery": 87}},
	"8": {"name": "Bedroom dimmer switch", "type": "ZLLSwitch", "modelid": "RWL021", "uniqueid": "00:17:88:01:dd:dd:dd:dd-02-fc00",
		"state": {"buttonevent": 1002, "lastupdated": "2024-01-01T09:00:00"}, "config": {"on": true, "battery": 100}}
}`

const groupsJson string = `{
	"1": {"name": "Kitchen", "type": "Room", "class": "Kitchen", "lights": ["1"], "sensors": []},
	"2": {"name": "Downstairs", "type": "Zone", "lights": ["1", "2"], "sensors": []}
}`

const roomsJson string = `{"errors": [], "data": [
	{"id": "room-1", "id_v1": "/groups/3", "metadata": {"name": "Hallway", "archetype": "hallway"},
		"children": [{"rid": "device-door", "rtype": "device"}], "services": []}
]}`

const devicesJson string = `{"errors": [], "data": [
	{"id": "device-door", "metadata": {"name": "Front door", "archetype": "unknown_archetype"}, "product_data": {"model_id": "SOC001"},
		"services": [{"rid": "contact-1", "rtype": "contact"}]},
	{"id": "device-motion", "id_v1": "/sensors/5", "metadata": {"name": "Kitchen motion"}, "product_data": {"model_id": "SML001"},
		"services": [{"rid": "motion-1", "rtype": "motion"}]}
]}`

const contactsJson string = `{"errors": [], "data": [
	{"id": "contact-1", "owner": {"rid": "device-door", "rtype": "device"}, "enabled": true,
		"contact_report": {"changed": "2024-01-01T09:58:12.345Z", "state": "no_contact"}}
]}`
