package csvjson

import (
	"errors"
	"strings"
	"testing"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

func TestToJSON_Basic(t *testing.T) {
	v, err := ToJSON("a,b\n1,2")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	out, _ := v.MarshalJSON()
	if string(out) != `[{"a":"1","b":"2"}]` {
		t.Errorf("got %s", out)
	}
}

func TestToJSON_TrimPadAndBlankLines(t *testing.T) {
	v, err := ToJSON(" name , age \n\nalice , 30\n   \nbob\n")
	if err != nil {
		t.Fatal(err)
	}
	out, _ := v.MarshalJSON()
	want := `[{"name":"alice","age":"30"},{"name":"bob","age":""}]`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestToJSON_QuotedFields(t *testing.T) {
	v, err := ToJSON("city,note\n\"Paris, FR\",\"say \"\"hi\"\"\"")
	if err != nil {
		t.Fatal(err)
	}
	out, _ := v.MarshalJSON()
	if string(out) != `[{"city":"Paris, FR","note":"say \"hi\""}]` {
		t.Errorf("got %s", out)
	}
}

func TestToJSON_TooShort(t *testing.T) {
	for _, in := range []string{"", "a,b", "a,b\n\n  \n"} {
		if _, err := ToJSON(in); !errors.Is(err, ErrTooShort) {
			t.Errorf("ToJSON(%q): %v", in, err)
		}
	}
	if apperr.UserMessage(ErrTooShort) != "CSV must have at least a header and one row of data." {
		t.Error("user message changed")
	}
}

func TestToJSONText_Indented(t *testing.T) {
	out, err := ToJSONText("a\n1")
	if err != nil {
		t.Fatal(err)
	}
	if out != "[\n  {\n    \"a\": \"1\"\n  }\n]" {
		t.Errorf("got %q", out)
	}
}

func TestToCSV_Flattens(t *testing.T) {
	out, err := ToCSV(`[{"x":1,"y":{"z":2}}]`)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out != "x,y.z\n1,2" {
		t.Errorf("got %q", out)
	}
}

func TestToCSV_UnionHeadersAndEscaping(t *testing.T) {
	out, err := ToCSV(`[{"a":"1"},{"b":"x,y","a":null},{"c":[1,2],"d":"say \"hi\""}]`)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if lines[0] != "a,b,c,d" {
		t.Errorf("header: %q", lines[0])
	}
	if lines[1] != "1,,," {
		t.Errorf("row 1: %q", lines[1])
	}
	if lines[2] != `,"x,y",,` {
		t.Errorf("row 2: %q", lines[2])
	}
	if lines[3] != `,,"[1,2]","say ""hi"""` {
		t.Errorf("row 3: %q", lines[3])
	}
}

func TestToCSV_SingleObject(t *testing.T) {
	out, err := ToCSV(`{"k":"v"}`)
	if err != nil || out != "k\nv" {
		t.Errorf("got %q, %v", out, err)
	}
}

func TestToCSV_ScalarItems(t *testing.T) {
	out, err := ToCSV(`["a", null, 2]`)
	if err != nil || out != "value\na\n\n2" {
		t.Errorf("got %q, %v", out, err)
	}
}

func TestToCSV_Errors(t *testing.T) {
	if _, err := ToCSV(`[]`); !errors.Is(err, ErrEmptyArray) {
		t.Errorf("empty array: %v", err)
	}
	_, err := ToCSV(`{broken`)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("broken json: %v", err)
	}
	if !strings.HasPrefix(apperr.UserMessage(err), "Invalid JSON:") {
		t.Errorf("message: %q", apperr.UserMessage(err))
	}
}
