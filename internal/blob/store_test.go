package blob

import "testing"

func TestPutAndGetRoundTrip(t *testing.T) {
	s := NewStore()
	id, err := s.Put("video/mp4", []byte("mp4bytes"))
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if id == "" {
		t.Fatal("Put returned empty id")
	}

	b, ok := s.Get(id)
	if !ok {
		t.Fatal("Get did not find stored blob")
	}
	if b.MimeType != "video/mp4" || string(b.Data) != "mp4bytes" {
		t.Fatalf("blob = %#v", b)
	}
}

func TestPutRejectsEmptyPayload(t *testing.T) {
	s := NewStore()
	if _, err := s.Put("video/mp4", nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestPutDefaultsMimeType(t *testing.T) {
	s := NewStore()
	id, err := s.Put("", []byte("x"))
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	b, _ := s.Get(id)
	if b.MimeType != "application/octet-stream" {
		t.Fatalf("MimeType = %q", b.MimeType)
	}
}

func TestDeleteIgnoresUnknownIDs(t *testing.T) {
	s := NewStore()
	id, _ := s.Put("video/mp4", []byte("x"))
	s.Delete("not-there")
	s.Delete(id)
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
	if _, ok := s.Get(id); ok {
		t.Fatal("deleted blob still retrievable")
	}
}
