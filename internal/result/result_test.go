package result

import (
	"encoding/json"
	"testing"
)

func TestResultJSONShape(t *testing.T) {
	ok, err := json.Marshal(Ok(map[string]string{"id": "42"}))
	if err != nil {
		t.Fatalf("marshal ok: %v", err)
	}
	if string(ok) != `{"success":true,"data":{"id":"42"}}` {
		t.Errorf("ok json = %s", ok)
	}

	fail, err := json.Marshal(NotFound[*struct{}]("user not found"))
	if err != nil {
		t.Fatalf("marshal fail: %v", err)
	}
	if string(fail) != `{"success":false,"error":{"message":"user not found","code":"not_found"}}` {
		t.Errorf("fail json = %s", fail)
	}
}

func TestResultJSONShape_ZeroValues(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{Ok(0), `{"success":true,"data":0}`},
		{Ok([]string{}), `{"success":true,"data":[]}`},
		{Ok[*struct{}](nil), `{"success":true,"data":null}`},
		{Fail[int]("boom"), `{"success":false,"error":{"message":"boom","code":"internal"}}`},
	}
	for _, tc := range cases {
		got, err := json.Marshal(tc.in)
		if err != nil {
			t.Fatalf("marshal %s: %v", tc.want, err)
		}
		if string(got) != tc.want {
			t.Errorf("json = %s; want %s", got, tc.want)
		}
	}

	var back Result[int]
	if err := json.Unmarshal([]byte(`{"success":true,"data":0}`), &back); err != nil || !back.Success || !back.Valid() {
		t.Errorf("round trip = %+v, %v", back, err)
	}
}

func TestResultBranches(t *testing.T) {
	if r := Ok(1); !r.Valid() || r.IsNotFound() {
		t.Errorf("Ok(1) = %+v", r)
	}
	if r := Fail[int]("boom"); !r.Valid() || r.Success || r.IsNotFound() {
		t.Errorf("Fail = %+v", r)
	}
	if r := NotFound[int]("gone"); !r.Valid() || !r.IsNotFound() {
		t.Errorf("NotFound = %+v", r)
	}
	if r := (Result[int]{Success: true, Error: &Error{Message: "x"}}); r.Valid() {
		t.Error("both branches populated should not be valid")
	}
}
