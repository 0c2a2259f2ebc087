package models

import "reviewhub/proj/internal/storage/postgres"

type Models struct {
	User     *UserModel
	Title    *TitleModel
	Category *CategoryModel
	Genre    *GenreModel
	Review   *ReviewModel
	Comment  *CommentModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		User:     &UserModel{db.Conn},
		Title:    &TitleModel{db.Conn},
		Category: &CategoryModel{refModel{db.Conn, "categories"}},
		Genre:    &GenreModel{refModel{db.Conn, "genres"}},
		Review:   &ReviewModel{db.Conn},
		Comment:  &CommentModel{db.Conn},
	}
}
