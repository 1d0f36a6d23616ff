// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

// Paraf signatory
type Paraf struct {
	ID      int    `json:"id"`
	Nama    string `json:"nama"`
	Jabatan string `json:"jabatan"`
	Nik     string `json:"nik"`
}

type ParafListResponse struct {
	Success bool    `json:"success"`
	Data    []Paraf `json:"data"`
}

// ParafForm all fields are required
type ParafForm struct {
	Nama    string `json:"nama" validate:"required" label:"Nama"`
	Jabatan string `json:"jabatan" validate:"required" label:"Jabatan"`
	Nik     string `json:"nik" validate:"required" label:"NIK"`
}

type ParafPayload struct {
	Nama    string `json:"nama"`
	Jabatan string `json:"jabatan"`
	Nik     string `json:"nik"`
}

func NewParafPayload(f ParafForm) ParafPayload {
	return ParafPayload{Nama: trim(f.Nama), Jabatan: trim(f.Jabatan), Nik: trim(f.Nik)}
}

// TtdLaporan report signature configuration
type TtdLaporan struct {
	ID       int      `json:"id"`
	Kode     string   `json:"kode"`
	Namalap  string   `json:"namalap"`
	ID1      *int     `json:"id1"`
	ID2      *int     `json:"id2"`
	ID3      *int     `json:"id3"`
	ID4      *int     `json:"id4"`
	Header1  string   `json:"header1"`
	Header2  string   `json:"header2"`
	Header3  string   `json:"header3"`
	Header4  string   `json:"header4"`
	IsID1    FlexBool `json:"is_id_1"`
	IsID2    FlexBool `json:"is_id_2"`
	IsID3    FlexBool `json:"is_id_3"`
	IsID4    FlexBool `json:"is_id_4"`
	Nama1    string   `json:"nama1"`
	Jabatan1 string   `json:"jabatan1"`
	Nik1     string   `json:"nik1"`
	Nama2    string   `json:"nama2"`
	Jabatan2 string   `json:"jabatan2"`
	Nik2     string   `json:"nik2"`
	Nama3    string   `json:"nama3"`
	Jabatan3 string   `json:"jabatan3"`
	Nik3     string   `json:"nik3"`
	Nama4    string   `json:"nama4"`
	Jabatan4 string   `json:"jabatan4"`
	Nik4     string   `json:"nik4"`
}

type TtdLaporanListResponse struct {
	Success bool         `json:"success"`
	Data    []TtdLaporan `json:"data"`
}

// TtdLaporanPayload update body; signatory ids are nullable
type TtdLaporanPayload struct {
	ID1     *int   `json:"id1"`
	ID2     *int   `json:"id2"`
	ID3     *int   `json:"id3"`
	ID4     *int   `json:"id4"`
	Header1 string `json:"header1"`
	Header2 string `json:"header2"`
	Header3 string `json:"header3"`
	Header4 string `json:"header4"`
	IsID1   bool   `json:"is_id_1"`
	IsID2   bool   `json:"is_id_2"`
	IsID3   bool   `json:"is_id_3"`
	IsID4   bool   `json:"is_id_4"`
}

// Normalize trims the header fields and maps non-positive ids to null
func (p TtdLaporanPayload) Normalize() TtdLaporanPayload {
	p.Header1, p.Header2, p.Header3, p.Header4 = trim(p.Header1), trim(p.Header2), trim(p.Header3), trim(p.Header4)
	p.ID1, p.ID2, p.ID3, p.ID4 = nullableID(p.ID1), nullableID(p.ID2), nullableID(p.ID3), nullableID(p.ID4)
	return p
}

func nullableID(id *int) *int {
	if id == nil || *id <= 0 {
		return nil
	}
	return id
}

// DesktopSettings global desktop application settings
type DesktopSettings struct {
	Headerlap1    string  `json:"headerlap1"`
	Headerlap2    string  `json:"headerlap2"`
	Alamat1       string  `json:"alamat1"`
	Alamat2       string  `json:"alamat2"`
	Footerkota    string  `json:"footerkota"`
	Latitude      *string `json:"latitude,omitempty"`
	Longitude     *string `json:"longitude,omitempty"`
	NoTelp        *string `json:"no_telp,omitempty"`
	NoWhatsapp    *string `json:"no_whatsapp,omitempty"`
	Email         *string `json:"email,omitempty"`
	LinkMaps      *string `json:"link_maps,omitempty"`
	LinkIg        *string `json:"link_ig,omitempty"`
	LinkBacameter *string `json:"link_bacameter,omitempty"`
}

type DesktopSettingsResponse struct {
	Success bool            `json:"success"`
	Data    DesktopSettings `json:"data"`
}

// DesktopSettingsForm the five editable fields, all required
type DesktopSettingsForm struct {
	Headerlap1 string `json:"headerlap1" validate:"required" label:"Header Laporan 1"`
	Headerlap2 string `json:"headerlap2" validate:"required" label:"Header Laporan 2"`
	Alamat1    string `json:"alamat1" validate:"required" label:"Alamat 1"`
	Alamat2    string `json:"alamat2" validate:"required" label:"Alamat 2"`
	Footerkota string `json:"footerkota" validate:"required" label:"Footer Kota"`
}

type DesktopSettingsPayload struct {
	Headerlap1 string `json:"headerlap1"`
	Headerlap2 string `json:"headerlap2"`
	Alamat1    string `json:"alamat1"`
	Alamat2    string `json:"alamat2"`
	Footerkota string `json:"footerkota"`
}

func NewDesktopSettingsPayload(f DesktopSettingsForm) DesktopSettingsPayload {
	return DesktopSettingsPayload{
		Headerlap1: trim(f.Headerlap1),
		Headerlap2: trim(f.Headerlap2),
		Alamat1:    trim(f.Alamat1),
		Alamat2:    trim(f.Alamat2),
		Footerkota: trim(f.Footerkota),
	}
}
